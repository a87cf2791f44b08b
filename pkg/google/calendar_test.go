package google

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/harrisonrobin/daybrief/pkg/clock"
	"github.com/harrisonrobin/daybrief/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

func testContext(t *testing.T) clock.DateContext {
	t.Helper()
	loc, err := clock.LoadLocation("Asia/Dhaka")
	require.NoError(t, err)
	return clock.Resolve(time.Date(2025, 7, 16, 7, 0, 0, 0, loc), loc)
}

func TestToSpecialEvents(t *testing.T) {
	dc := testContext(t)
	items := []*calendar.Event{
		{Summary: "Club meeting", Location: "Room 12", Start: &calendar.EventDateTime{DateTime: "2025-07-16T09:30:00Z"}},
		{Summary: "Convocation", Start: &calendar.EventDateTime{Date: "2025-07-16"}},
		{Summary: "Cancelled", Status: "cancelled", Start: &calendar.EventDateTime{Date: "2025-07-16"}},
		{Summary: "No start"},
	}

	got := ToSpecialEvents(items, dc)

	assert.Equal(t, []model.SpecialEvent{
		{Date: "2025-07-16", Event: "Club meeting", Time: "3:30 PM", Location: "Room 12"},
		{Date: "2025-07-16", Event: "Convocation", Time: allDay, Location: noLocation},
	}, got)
}

func TestTodayEvents(t *testing.T) {
	var query map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"summary":"Seminar","location":"Hall","start":{"dateTime":"2025-07-16T10:00:00+06:00"}}]}`))
	}))
	defer srv.Close()

	svc, err := calendar.NewService(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	got, err := NewCalendarClient(svc, "primary").TodayEvents(context.Background(), testContext(t))
	require.NoError(t, err)

	assert.Equal(t, []model.SpecialEvent{
		{Date: "2025-07-16", Event: "Seminar", Time: "10:00 AM", Location: "Hall"},
	}, got)
	assert.Equal(t, []string{"2025-07-16T00:00:00+06:00"}, query["timeMin"])
	assert.Equal(t, []string{"2025-07-17T00:00:00+06:00"}, query["timeMax"])
	assert.Equal(t, []string{"true"}, query["singleEvents"])
}
