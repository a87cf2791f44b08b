// Package routine loads the routine documents a digest is built from.
//
// Every loader is tolerant: a missing or malformed file yields an empty list
// and a warning, so one broken document only degrades its own section.
package routine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/harrisonrobin/daybrief/pkg/model"
	"go.uber.org/zap"
)

const (
	ClassRoutineFile  = "class_routine.json"
	SelfLearningFile  = "self_learning.json"
	DeadlinesFile     = "deadlines.json"
	SpecialEventsFile = "special_events.json"
)

// Routine is the full set of documents for one run.
type Routine struct {
	Classes   []model.ClassEntry
	Learning  []model.LearningTask
	Deadlines []model.Deadline
	Events    []model.SpecialEvent
}

// Loader reads routine documents from a directory.
type Loader struct {
	Dir    string
	logger *zap.Logger
}

func NewLoader(dir string, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{Dir: dir, logger: logger}
}

// Load reads all four documents.
func (l *Loader) Load() Routine {
	r := Routine{
		Classes:   load[model.ClassEntry](l, ClassRoutineFile),
		Learning:  load[model.LearningTask](l, SelfLearningFile),
		Deadlines: load[model.Deadline](l, DeadlinesFile),
		Events:    load[model.SpecialEvent](l, SpecialEventsFile),
	}
	for i := range r.Deadlines {
		r.Deadlines[i].Source = "file"
	}
	return r
}

func load[T any](l *Loader, name string) []T {
	path := filepath.Join(l.Dir, name)
	items, err := decodeFile[T](path)
	if err != nil {
		l.logger.Warn("could not load routine file", zap.String("path", path), zap.Error(err))
		return nil
	}
	l.logger.Debug("loaded routine file", zap.String("path", path), zap.Int("entries", len(items)))
	return items
}

func decodeFile[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var items []T
	if err := json.NewDecoder(f).Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	return items, nil
}
