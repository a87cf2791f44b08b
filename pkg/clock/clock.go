// Package clock resolves the calendar context a digest is built for.
package clock

import (
	"fmt"
	"time"
	_ "time/tzdata" // timezone lookups must not depend on the host's zoneinfo
)

const (
	// DefaultTimezone is the zone the digest is built in unless configured otherwise.
	DefaultTimezone = "Asia/Dhaka"

	LayoutYMD      = "2006-01-02"
	LayoutMonthDay = "January 02"
	LayoutHeader   = "Monday, January 02"
	LayoutShort    = "Jan 02"
)

// DateContext is everything the section builders need to know about "today".
type DateContext struct {
	DayName      string
	DateYMD      string
	DateMonthDay string
	Header       string
	// Today is midnight of the current day in Location.
	Today    time.Time
	Location *time.Location
}

// LoadLocation loads a named timezone.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unable to load timezone %q: %w", name, err)
	}
	return loc, nil
}

// Resolve fixes now in loc and derives the filter keys used by the sections.
func Resolve(now time.Time, loc *time.Location) DateContext {
	local := now.In(loc)
	y, m, d := local.Date()
	return DateContext{
		DayName:      local.Weekday().String(),
		DateYMD:      local.Format(LayoutYMD),
		DateMonthDay: local.Format(LayoutMonthDay),
		Header:       local.Format(LayoutHeader),
		Today:        time.Date(y, m, d, 0, 0, 0, 0, loc),
		Location:     loc,
	}
}

// DaysUntil returns the number of whole calendar days from today to t's date.
// Both dates are compared as civil dates so DST transitions don't skew the result.
// The difference is taken in Unix seconds since a time.Duration caps out near 292 years.
func (dc DateContext) DaysUntil(t time.Time) int {
	ty, tm, td := dc.Today.Date()
	y, m, d := t.Date()
	from := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	to := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return int((to.Unix() - from.Unix()) / 86400)
}

// ParseYMD parses a YYYY-MM-DD string as a date in the context's location.
func (dc DateContext) ParseYMD(s string) (time.Time, error) {
	loc := dc.Location
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(LayoutYMD, s, loc)
}
