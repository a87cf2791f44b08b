// Package digest builds the text blocks of the daily digest and composes them
// into the final message.
package digest

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/harrisonrobin/daybrief/pkg/clock"
	"github.com/harrisonrobin/daybrief/pkg/model"
	"go.uber.org/zap"
)

const (
	NoRoutine        = "• No classes found in routine file."
	NoClassesToday   = "• No classes today. Enjoy the free time!"
	NoLearningPlan   = "• No self-learning plan found."
	NoLearningToday  = "• No specific learning tasks for today."
	NoDeadlines      = "• No deadlines found."
	NoDeadlinesToday = "• No deadlines today. Keep up the great work!"
	AllCaughtUp      = "• No upcoming deadlines. You're all caught up!"
	NoEventsToday    = "• No special events scheduled for today."
)

// classTimeLayout is the 12-hour clock used in class routine time ranges.
const classTimeLayout = "3:04 PM"

// Builder renders the sections for a single DateContext.
type Builder struct {
	dc     clock.DateContext
	logger *zap.Logger
}

func NewBuilder(dc clock.DateContext, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{dc: dc, logger: logger}
}

// ParseStartTime returns the start of a "9:00 AM-10:30 AM" range as a time of day.
func ParseStartTime(r string) (time.Time, error) {
	start, _, _ := strings.Cut(r, "-")
	start = strings.ToUpper(strings.TrimSpace(start))
	t, err := time.Parse(classTimeLayout, start)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid class time %q: %w", r, err)
	}
	return t, nil
}

// Classes lists today's classes in start-time order. Entries whose time
// can't be parsed are left out and logged.
func (b *Builder) Classes(routine []model.ClassEntry) string {
	if len(routine) == 0 {
		return NoRoutine
	}

	type timedClass struct {
		entry model.ClassEntry
		start time.Time
	}

	var today []timedClass
	for _, c := range routine {
		if !strings.EqualFold(c.Day, b.dc.DayName) {
			continue
		}
		start, err := ParseStartTime(c.Time)
		if err != nil {
			b.logger.Warn("skipping class with malformed time",
				zap.String("course", c.Course), zap.Error(err))
			continue
		}
		today = append(today, timedClass{entry: c, start: start})
	}

	if len(today) == 0 {
		return NoClassesToday
	}

	sort.SliceStable(today, func(i, j int) bool {
		return today[i].start.Before(today[j].start)
	})

	lines := make([]string, 0, len(today))
	for _, tc := range today {
		c := tc.entry
		lines = append(lines, fmt.Sprintf("• %s — %s at %s (%s)", c.Course, c.Time, c.Room, c.Floor))
	}
	return strings.Join(lines, "\n")
}

// Learning lists the self-learning tasks planned for today.
func (b *Builder) Learning(plan []model.LearningTask) string {
	if len(plan) == 0 {
		return NoLearningPlan
	}

	var lines []string
	for _, p := range plan {
		if p.Date == b.dc.DateMonthDay {
			lines = append(lines, "• "+p.Task)
		}
	}
	if len(lines) == 0 {
		return NoLearningToday
	}
	return strings.Join(lines, "\n")
}

type upcoming struct {
	deadline model.Deadline
	date     time.Time
	days     int
}

// Deadlines lists every deadline due today or later, soonest first.
// Records without a task or with an unparseable date are skipped.
func (b *Builder) Deadlines(deadlines []model.Deadline) string {
	if len(deadlines) == 0 {
		return NoDeadlines
	}

	var due []upcoming
	for _, d := range deadlines {
		if d.Task == "" {
			b.logger.Debug("skipping deadline without a task",
				zap.String("source", d.Source), zap.String("date", d.Date))
			continue
		}
		date, err := b.dc.ParseYMD(d.Date)
		if err != nil {
			b.logger.Debug("skipping deadline with invalid date",
				zap.String("source", d.Source), zap.String("task", d.Task), zap.String("date", d.Date))
			continue
		}
		days := b.dc.DaysUntil(date)
		if days < 0 {
			continue
		}
		due = append(due, upcoming{deadline: d, date: date, days: days})
	}

	if len(due) == 0 {
		return AllCaughtUp
	}

	// YYYY-MM-DD sorts lexicographically in date order.
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].deadline.Date < due[j].deadline.Date
	})

	lines := make([]string, 0, len(due))
	for _, u := range due {
		lines = append(lines, fmt.Sprintf("• %s — %s", u.deadline.Task, dueLabel(u.date, u.days)))
	}
	return strings.Join(lines, "\n")
}

func dueLabel(date time.Time, days int) string {
	switch days {
	case 0:
		return "Due Today!"
	case 1:
		return "Due Tomorrow!"
	default:
		return fmt.Sprintf("Due in %d days (%s)", days, date.Format(clock.LayoutShort))
	}
}

// DeadlinesDueToday only lists deadlines whose date is exactly today.
// Deadlines supersedes it in the digest.
func (b *Builder) DeadlinesDueToday(deadlines []model.Deadline) string {
	if len(deadlines) == 0 {
		return NoDeadlines
	}

	var lines []string
	for _, d := range deadlines {
		if d.Date == b.dc.DateYMD {
			lines = append(lines, fmt.Sprintf("• %s — Due Today!", d.Task))
		}
	}
	if len(lines) == 0 {
		return NoDeadlinesToday
	}
	return strings.Join(lines, "\n")
}

// Events lists today's special events in the order they were given.
func (b *Builder) Events(events []model.SpecialEvent) string {
	var lines []string
	for _, e := range events {
		if e.Date == b.dc.DateYMD {
			lines = append(lines, fmt.Sprintf("• %s — %s @ %s", e.Event, e.Time, e.Location))
		}
	}
	if len(lines) == 0 {
		return NoEventsToday
	}
	return strings.Join(lines, "\n")
}

// Input is the raw routine data a digest is built from.
type Input struct {
	Classes   []model.ClassEntry
	Learning  []model.LearningTask
	Deadlines []model.Deadline
	Events    []model.SpecialEvent
}
