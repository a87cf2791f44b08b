// Package brief runs the daily digest pipeline end to end: resolve today,
// load the routine, build and compose the sections, ask for advice and deliver.
package brief

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/harrisonrobin/daybrief/pkg/advice"
	"github.com/harrisonrobin/daybrief/pkg/clock"
	"github.com/harrisonrobin/daybrief/pkg/config"
	"github.com/harrisonrobin/daybrief/pkg/digest"
	"github.com/harrisonrobin/daybrief/pkg/model"
	"github.com/harrisonrobin/daybrief/pkg/routine"
	"go.uber.org/zap"
)

// ErrMissingCredentials means the bot token or recipient is not configured.
var ErrMissingCredentials = errors.New("TELEGRAM_BOT_TOKEN and TELEGRAM_USER_ID must be set")

// Sender delivers a composed message.
type Sender interface {
	SendMessage(ctx context.Context, chatID, text string) error
}

// Advisor produces the advice section. It must not fail.
type Advisor interface {
	Advise(ctx context.Context, schedule string) advice.Advice
}

// EventSource contributes extra special events for today.
type EventSource interface {
	TodayEvents(ctx context.Context, dc clock.DateContext) ([]model.SpecialEvent, error)
}

// DeadlineSource contributes extra deadlines.
type DeadlineSource interface {
	Deadlines(ctx context.Context, loc *time.Location) ([]model.Deadline, error)
}

// Runner holds the collaborators for one digest run.
type Runner struct {
	cfg     *config.Config
	sender  Sender
	advisor Advisor
	logger  *zap.Logger

	Out       io.Writer
	Now       func() time.Time
	Rand      *rand.Rand
	Events    EventSource
	Deadlines []DeadlineSource
}

func NewRunner(cfg *config.Config, sender Sender, advisor Advisor, out io.Writer, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		cfg:     cfg,
		sender:  sender,
		advisor: advisor,
		logger:  logger,
		Out:     out,
		Now:     time.Now,
	}
}

// Validate checks the configuration needed before any I/O happens.
func Validate(cfg *config.Config) error {
	if cfg.Telegram.BotToken == "" || cfg.Telegram.UserID == "" {
		return ErrMissingCredentials
	}
	return nil
}

// Result describes a completed run.
type Result struct {
	Message   string
	Advice    advice.Advice
	Delivered bool
	// DeliveryErr is set when sending failed. Run still returns nil in that case.
	DeliveryErr error
}

// Run builds and delivers one digest. Only configuration errors are returned;
// everything after validation degrades instead of failing.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	if err := Validate(r.cfg); err != nil {
		return nil, err
	}

	loc, err := clock.LoadLocation(r.cfg.Timezone)
	if err != nil {
		return nil, err
	}
	dc := clock.Resolve(r.Now(), loc)
	r.logger.Debug("resolved date context",
		zap.String("day", dc.DayName), zap.String("date", dc.DateYMD), zap.String("timezone", loc.String()))

	in := r.gather(ctx, dc)
	sections := digest.NewBuilder(dc, r.logger).Build(in)
	summary := sections.Summary()

	adv := r.advisor.Advise(ctx, summary)
	msg := digest.Message{
		Name:    r.cfg.Name,
		Header:  dc.Header,
		Summary: summary,
		Advice:  adv.Text,
		Tip:     advice.Tip(r.Rand),
	}.String()

	res := &Result{Message: msg, Advice: adv}
	if r.Out != nil {
		fmt.Fprintln(r.Out, "--- Sending Message ---")
		fmt.Fprintln(r.Out, msg)
		fmt.Fprintln(r.Out, "-----------------------")
	}

	if r.cfg.DryRun {
		r.logger.Info("dry run, message not sent")
		return res, nil
	}

	if err := r.sender.SendMessage(ctx, r.cfg.Telegram.UserID, msg); err != nil {
		r.logger.Error("failed to send message", zap.Error(err))
		res.DeliveryErr = err
		return res, nil
	}
	res.Delivered = true
	r.logger.Info("message sent successfully")
	return res, nil
}

// gather loads the routine files and merges in the optional sources.
func (r *Runner) gather(ctx context.Context, dc clock.DateContext) digest.Input {
	rt := routine.NewLoader(r.cfg.DataDir, r.logger).Load()
	in := digest.Input{
		Classes:   rt.Classes,
		Learning:  rt.Learning,
		Deadlines: rt.Deadlines,
		Events:    rt.Events,
	}

	if r.Events != nil {
		events, err := r.Events.TodayEvents(ctx, dc)
		if err != nil {
			r.logger.Warn("could not load calendar events", zap.Error(err))
		} else {
			in.Events = append(in.Events, events...)
		}
	}
	for _, src := range r.Deadlines {
		deadlines, err := src.Deadlines(ctx, dc.Location)
		if err != nil {
			r.logger.Warn("could not load extra deadlines", zap.String("source", fmt.Sprintf("%T", src)), zap.Error(err))
			continue
		}
		in.Deadlines = append(in.Deadlines, deadlines...)
	}
	return in
}
