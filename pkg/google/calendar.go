package google

import (
	"context"
	"fmt"
	"time"

	"github.com/harrisonrobin/daybrief/pkg/clock"
	"github.com/harrisonrobin/daybrief/pkg/model"
	"google.golang.org/api/calendar/v3"
)

const (
	allDay          = "All day"
	noLocation      = "TBA"
	eventTimeLayout = "3:04 PM"
)

// CalendarClient reads events from one Google Calendar.
type CalendarClient struct {
	srv        *calendar.Service
	calendarID string
}

func NewCalendarClient(srv *calendar.Service, calendarID string) *CalendarClient {
	return &CalendarClient{srv: srv, calendarID: calendarID}
}

// ListEvents fetches single events starting in [timeMin, timeMax), ordered by start time.
func (c *CalendarClient) ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]*calendar.Event, error) {
	events, err := c.srv.Events.List(c.calendarID).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve events from calendar: %w", err)
	}
	return events.Items, nil
}

// TodayEvents returns today's calendar events as special events.
func (c *CalendarClient) TodayEvents(ctx context.Context, dc clock.DateContext) ([]model.SpecialEvent, error) {
	items, err := c.ListEvents(ctx, dc.Today, dc.Today.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	return ToSpecialEvents(items, dc), nil
}

// ToSpecialEvents converts calendar events, dating each one in dc's location.
// Cancelled events and events without a parsable start are dropped.
func ToSpecialEvents(items []*calendar.Event, dc clock.DateContext) []model.SpecialEvent {
	var events []model.SpecialEvent
	for _, item := range items {
		if item == nil || item.Start == nil || item.Status == "cancelled" {
			continue
		}

		var date, at string
		switch {
		case item.Start.DateTime != "":
			start, err := time.Parse(time.RFC3339, item.Start.DateTime)
			if err != nil {
				continue
			}
			start = start.In(dc.Location)
			date, at = start.Format(clock.LayoutYMD), start.Format(eventTimeLayout)
		case item.Start.Date != "":
			date, at = item.Start.Date, allDay
		default:
			continue
		}

		location := item.Location
		if location == "" {
			location = noLocation
		}
		events = append(events, model.SpecialEvent{
			Date:     date,
			Event:    item.Summary,
			Time:     at,
			Location: location,
		})
	}
	return events
}
