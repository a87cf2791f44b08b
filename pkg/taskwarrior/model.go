package taskwarrior

import (
	"fmt"
	"strings"
	"time"

	"github.com/harrisonrobin/daybrief/pkg/model"
)

const (
	PENDING   = "pending"
	COMPLETED = "completed"
	WAITING   = "waiting"
	DELETED   = "deleted"
)

type CustomTime struct {
	time.Time
}

const taskwarriorTimeLayout = "20060102T150405Z" // YYYYMMDDTHHMMSSZ, 'Z' indicates UTC

// UnmarshalJSON implements the json.Unmarshaler interface for CustomTime.
func (ct *CustomTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "0" {
		ct.Time = time.Time{}
		return nil
	}

	t, err := time.Parse(taskwarriorTimeLayout, s)
	if err != nil {
		return fmt.Errorf("failed to parse Taskwarrior time string '%s': %w", s, err)
	}
	ct.Time = t
	return nil
}

// MarshalJSON implements the json.Marshaler interface for CustomTime.
func (ct CustomTime) MarshalJSON() ([]byte, error) {
	if ct.Time.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + ct.Time.Format(taskwarriorTimeLayout) + `"`), nil
}

// Task is the subset of a Taskwarrior export the digest reads.
type Task struct {
	UUID        string      `json:"uuid"`
	Description string      `json:"description"`
	Due         *CustomTime `json:"due,omitempty"`
	Status      string      `json:"status"`
	Project     string      `json:"project,omitempty"`
	Tags        []string    `json:"tags,omitempty"`
}

// Title is the description prefixed with the project, if any.
func (t Task) Title() string {
	if t.Project == "" {
		return t.Description
	}
	return fmt.Sprintf("[%s] %s", t.Project, t.Description)
}

// ToDeadlines converts pending tasks with a due date into deadlines dated in loc.
// Taskwarrior stores due dates in UTC, so a task due at local midnight must be
// converted before its date is taken.
func ToDeadlines(tasks []Task, loc *time.Location) []model.Deadline {
	var deadlines []model.Deadline
	for _, t := range tasks {
		if t.Status != PENDING || t.Due == nil || t.Due.IsZero() {
			continue
		}
		deadlines = append(deadlines, model.Deadline{
			Date:   t.Due.In(loc).Format("2006-01-02"),
			Task:   t.Title(),
			Source: "taskwarrior",
		})
	}
	return deadlines
}
