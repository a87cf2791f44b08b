package brief

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harrisonrobin/daybrief/pkg/advice"
	"github.com/harrisonrobin/daybrief/pkg/clock"
	"github.com/harrisonrobin/daybrief/pkg/config"
	"github.com/harrisonrobin/daybrief/pkg/digest"
	"github.com/harrisonrobin/daybrief/pkg/model"
	"github.com/harrisonrobin/daybrief/pkg/routine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeSender struct {
	calls  int
	chatID string
	text   string
	err    error
}

func (f *fakeSender) SendMessage(_ context.Context, chatID, text string) error {
	f.calls++
	f.chatID, f.text = chatID, text
	return f.err
}

type fakeAdvisor struct {
	calls int
}

func (f *fakeAdvisor) Advise(context.Context, string) advice.Advice {
	f.calls++
	return advice.Advice{Text: "Plan the day. 🌞", Source: advice.SourceGenerated}
}

type slowGenerator struct{}

func (slowGenerator) Generate(ctx context.Context, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

type staticEvents []model.SpecialEvent

func (s staticEvents) TodayEvents(context.Context, clock.DateContext) ([]model.SpecialEvent, error) {
	return s, nil
}

type failingDeadlines struct{}

func (failingDeadlines) Deadlines(context.Context, *time.Location) ([]model.Deadline, error) {
	return nil, errors.New("task: command not found")
}

type staticDeadlines []model.Deadline

func (s staticDeadlines) Deadlines(context.Context, *time.Location) ([]model.Deadline, error) {
	return s, nil
}

func writeRoutine(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		routine.ClassRoutineFile: `[
			{"day": "Wednesday", "time": "2:00 PM-3:30 PM", "course": "Physics", "room": "301", "floor": "3rd"},
			{"day": "Wednesday", "time": "9:00 AM-10:30 AM", "course": "Math", "room": "504", "floor": "5th"}
		]`,
		routine.SelfLearningFile: `[{"date": "July 16", "task": "Go generics"}]`,
		routine.DeadlinesFile: `[
			{"date": "2025-07-16", "task": "A"},
			{"date": "2025-07-17", "task": "B"},
			{"date": "2025-07-20", "task": "C"},
			{"date": "2025-07-01", "task": "D"},
			{"task": "E"}
		]`,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0600))
	}
	return dir
}

func testConfig(dataDir string) *config.Config {
	return &config.Config{
		Name:     "Muhitul",
		Timezone: "Asia/Dhaka",
		DataDir:  dataDir,
		Telegram: config.Telegram{BotToken: "token", UserID: "42"},
	}
}

func newTestRunner(t *testing.T, cfg *config.Config, sender Sender, advisor Advisor) (*Runner, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	r := NewRunner(cfg, sender, advisor, &out, zaptest.NewLogger(t))
	r.Now = func() time.Time { return time.Date(2025, 7, 16, 1, 0, 0, 0, time.UTC) }
	r.Rand = rand.New(rand.NewSource(7))
	return r, &out
}

func TestRun(t *testing.T) {
	sender := &fakeSender{}
	r, out := newTestRunner(t, testConfig(writeRoutine(t)), sender, &fakeAdvisor{})
	r.Events = staticEvents{{Date: "2025-07-16", Event: "Seminar", Time: "4:00 PM", Location: "Hall"}}
	r.Deadlines = []DeadlineSource{failingDeadlines{}, staticDeadlines{{Date: "2025-07-18", Task: "Org task"}}}

	res, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, res.Delivered)
	assert.Equal(t, 1, sender.calls)
	assert.Equal(t, "42", sender.chatID)
	assert.Equal(t, res.Message, sender.text)

	msg := res.Message
	assert.Contains(t, msg, "Good Morning Muhitul! Here's your plan for today (Wednesday, July 16)")
	assert.Contains(t, msg, "• Math — 9:00 AM-10:30 AM at 504 (5th)\n• Physics — 2:00 PM-3:30 PM at 301 (3rd)")
	assert.Contains(t, msg, "• Go generics")
	assert.Contains(t, msg, "• A — Due Today!\n• B — Due Tomorrow!\n• Org task — Due in 2 days (Jul 18)\n• C — Due in 4 days (Jul 20)\n")
	assert.NotContains(t, msg, "• D —")
	assert.NotContains(t, msg, "• E —")
	assert.Contains(t, msg, "• Seminar — 4:00 PM @ Hall")
	assert.Contains(t, msg, "\"Plan the day. 🌞\"")

	assert.Contains(t, out.String(), "--- Sending Message ---")
	assert.Contains(t, out.String(), msg)
}

func TestRunMissingRecipient(t *testing.T) {
	cfg := testConfig(writeRoutine(t))
	cfg.Telegram.UserID = ""
	sender, advisor := &fakeSender{}, &fakeAdvisor{}
	r, out := newTestRunner(t, cfg, sender, advisor)

	_, err := r.Run(context.Background())

	assert.ErrorIs(t, err, ErrMissingCredentials)
	assert.Zero(t, sender.calls)
	assert.Zero(t, advisor.calls)
	assert.Empty(t, out.String())
}

func TestRunAdviceTimeoutStillDelivers(t *testing.T) {
	sender := &fakeSender{}
	adv := advice.NewAdvisor(slowGenerator{}, 10*time.Millisecond, zaptest.NewLogger(t))
	r, _ := newTestRunner(t, testConfig(writeRoutine(t)), sender, adv)

	res, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, advice.SourceFallback, res.Advice.Source)
	assert.Contains(t, advice.Fallbacks, res.Advice.Text)
	assert.Equal(t, 1, sender.calls)
}

func TestRunDeliveryFailureIsNotAnError(t *testing.T) {
	sender := &fakeSender{err: errors.New("status 400")}
	r, _ := newTestRunner(t, testConfig(writeRoutine(t)), sender, &fakeAdvisor{})

	res, err := r.Run(context.Background())

	require.NoError(t, err)
	assert.False(t, res.Delivered)
	assert.EqualError(t, res.DeliveryErr, "status 400")
	assert.Equal(t, 1, sender.calls)
}

func TestRunMissingDataDegrades(t *testing.T) {
	sender := &fakeSender{}
	r, _ := newTestRunner(t, testConfig(t.TempDir()), sender, &fakeAdvisor{})

	res, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Contains(t, res.Message, digest.NoRoutine)
	assert.Contains(t, res.Message, digest.NoLearningPlan)
	assert.Contains(t, res.Message, digest.NoDeadlines)
	assert.Contains(t, res.Message, digest.NoEventsToday)
	assert.Equal(t, 1, sender.calls)
}

func TestRunDryRun(t *testing.T) {
	cfg := testConfig(writeRoutine(t))
	cfg.DryRun = true
	sender := &fakeSender{}
	r, out := newTestRunner(t, cfg, sender, &fakeAdvisor{})

	res, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.False(t, res.Delivered)
	assert.Zero(t, sender.calls)
	assert.Contains(t, out.String(), res.Message)
}
