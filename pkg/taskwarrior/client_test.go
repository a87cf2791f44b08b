package taskwarrior

import (
	"strings"
	"testing"
	"time"

	"github.com/harrisonrobin/daybrief/pkg/model"
)

func TestParseTasks(t *testing.T) {
	input := `[{
		"uuid": "f45a05b3-c12e-42e5-9c9c-333333333333",
		"description": "Submit lab report",
		"status": "pending",
		"due": "20250719T180000Z",
		"project": "Physics",
		"tags": ["uni"]
	}]`

	tasks, err := ParseTasks(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseTasks failed: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("Expected 1 task, got %d", len(tasks))
	}

	task := tasks[0]
	if task.Description != "Submit lab report" {
		t.Errorf("Expected Description 'Submit lab report', got '%s'", task.Description)
	}
	if task.Project != "Physics" {
		t.Errorf("Expected Project 'Physics', got '%s'", task.Project)
	}
	expectedDue, _ := time.Parse(time.RFC3339, "2025-07-19T18:00:00Z")
	if !task.Due.Time.Equal(expectedDue) {
		t.Errorf("Expected Due %v, got %v", expectedDue, task.Due.Time)
	}
}

func TestToDeadlines(t *testing.T) {
	dhaka := time.FixedZone("BDT", 6*60*60)

	due := func(s string) *CustomTime {
		ts, _ := time.Parse(time.RFC3339, s)
		return &CustomTime{Time: ts}
	}
	tasks := []Task{
		// 18:00 UTC is already the next day in Dhaka.
		{Description: "Lab report", Project: "Physics", Status: PENDING, Due: due("2025-07-19T18:00:00Z")},
		{Description: "Done already", Status: COMPLETED, Due: due("2025-07-18T10:00:00Z")},
		{Description: "Someday", Status: PENDING},
		{Description: "Essay", Status: PENDING, Due: due("2025-07-21T03:00:00Z")},
	}

	got := ToDeadlines(tasks, dhaka)

	want := []model.Deadline{
		{Date: "2025-07-20", Task: "[Physics] Lab report", Source: "taskwarrior"},
		{Date: "2025-07-21", Task: "Essay", Source: "taskwarrior"},
	}
	if len(got) != len(want) {
		t.Fatalf("Expected %d deadlines, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("deadline %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}
