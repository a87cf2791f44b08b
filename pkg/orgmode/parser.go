// Package orgmode reads deadlines from Org-mode agenda files.
package orgmode

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/harrisonrobin/daybrief/pkg/model"
)

var (
	headlineRegex = regexp.MustCompile(`^\*+\s+(TODO|DONE)\s+(?:\[#([A-Z])\]\s*)?(.*?)(?:\s+(:[\w@:]+:))?\s*$`)
	deadlineRegex = regexp.MustCompile(`DEADLINE:\s+<(\d{4}-\d{2}-\d{2})[^>]*>`)
)

// Entry is an open headline with a deadline.
type Entry struct {
	Title    string
	Priority string
	Deadline string // YYYY-MM-DD
}

// Task is the title prefixed with the priority cookie, if any.
func (e Entry) Task() string {
	if e.Priority == "" {
		return e.Title
	}
	return fmt.Sprintf("[#%s] %s", e.Priority, e.Title)
}

// Parse returns every TODO headline in r that carries a DEADLINE. DONE
// headlines are skipped.
func Parse(r io.Reader) ([]Entry, error) {
	scanner := bufio.NewScanner(r)
	var entries []Entry
	var current *Entry

	flush := func() {
		if current != nil && current.Title != "" && current.Deadline != "" {
			entries = append(entries, *current)
		}
		current = nil
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, "*") {
			flush()
			matches := headlineRegex.FindStringSubmatch(line)
			if len(matches) == 0 || matches[1] != "TODO" {
				continue
			}
			current = &Entry{Priority: matches[2], Title: strings.TrimSpace(matches[3])}
			continue
		}

		if current != nil && current.Deadline == "" {
			if matches := deadlineRegex.FindStringSubmatch(line); len(matches) > 0 {
				current.Deadline = matches[1]
			}
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Source is a deadline source backed by a list of Org files.
type Source struct {
	Files []string
}

func NewSource(files []string) *Source {
	return &Source{Files: files}
}

// Deadlines parses every file. Org timestamps carry no zone and are already
// local dates, so loc is unused.
func (s *Source) Deadlines(_ context.Context, _ *time.Location) ([]model.Deadline, error) {
	var deadlines []model.Deadline
	for _, path := range s.Files {
		entries, err := parseFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		for _, e := range entries {
			deadlines = append(deadlines, model.Deadline{Date: e.Deadline, Task: e.Task(), Source: "orgmode"})
		}
	}
	return deadlines, nil
}

func parseFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}
