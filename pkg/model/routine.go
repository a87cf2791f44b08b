package model

// ClassEntry is one slot of the weekly class routine.
type ClassEntry struct {
	Day    string `json:"day"`
	Time   string `json:"time"` // "9:00 AM-10:30 AM"
	Course string `json:"course"`
	Room   string `json:"room"`
	Floor  string `json:"floor"`
}

// LearningTask is a self-learning item keyed by a "July 16" style date.
type LearningTask struct {
	Date string `json:"date"`
	Task string `json:"task"`
}

// Deadline is a task due on a YYYY-MM-DD date.
type Deadline struct {
	Date   string `json:"date"`
	Task   string `json:"task"`
	// Source is "file", "taskwarrior" etc. It is never read from JSON.
	Source string `json:"-"`
}

// SpecialEvent is a one-off event on a YYYY-MM-DD date.
type SpecialEvent struct {
	Date     string `json:"date"`
	Event    string `json:"event"`
	Time     string `json:"time"`
	Location string `json:"location"`
}
