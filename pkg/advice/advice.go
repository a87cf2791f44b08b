// Package advice produces the motivational part of the digest.
package advice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultTimeout = 20 * time.Second

	DisabledText = "To get AI advice, set the GEMINI_API_KEY environment variable."

	FallbackShape   = "Couldn't generate advice today, but keep pushing forward! You can do it. ✨"
	FallbackNetwork = "Could not fetch AI advice due to a network error. But remember to stay focused! 👍"
	FallbackGeneric = "An unexpected error occurred while getting advice. Have a great day! 😊"
)

// Fallbacks lists every text Advise can return in place of generated advice.
var Fallbacks = []string{FallbackShape, FallbackNetwork, FallbackGeneric}

// ErrEmptyResponse is returned by a Generator whose response carried no text.
var ErrEmptyResponse = errors.New("response contained no text")

// Source records where an Advice text came from.
type Source int

const (
	SourceGenerated Source = iota
	SourceFallback
	SourceDisabled
)

func (s Source) String() string {
	switch s {
	case SourceGenerated:
		return "generated"
	case SourceFallback:
		return "fallback"
	case SourceDisabled:
		return "disabled"
	}
	return fmt.Sprintf("Source(%d)", int(s))
}

// Advice is the text placed in the digest, generated or not.
type Advice struct {
	Text   string
	Source Source
}

// Generator turns a prompt into text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Advisor asks a Generator for advice about a schedule. It never fails: every
// error is turned into one of the Fallbacks.
type Advisor struct {
	gen     Generator
	timeout time.Duration
	logger  *zap.Logger
	// initErr is set when the generator could not be constructed.
	initErr error
}

// NewAdvisor wraps gen. A nil gen disables advice generation.
func NewAdvisor(gen Generator, timeout time.Duration, logger *zap.Logger) *Advisor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Advisor{gen: gen, timeout: timeout, logger: logger}
}

// NewBrokenAdvisor returns an Advisor that always answers with the generic
// fallback, for when the generator client could not be built.
func NewBrokenAdvisor(err error, logger *zap.Logger) *Advisor {
	a := NewAdvisor(nil, 0, logger)
	a.initErr = err
	return a
}

// Prompt builds the request sent to the generator for a schedule summary.
func Prompt(schedule string) string {
	return "You are a friendly and motivational student advisor. " +
		"Based on the following schedule for a student in Bangladesh, provide one or two short, encouraging sentences of advice. " +
		"Focus on prioritizing tasks, managing time, or staying motivated. Add a positive emoji at the end.\n\n" +
		"Today's Schedule:\n" + schedule
}

// Advise returns advice for the schedule.
func (a *Advisor) Advise(ctx context.Context, schedule string) Advice {
	if a.initErr != nil {
		a.logger.Warn("advice generator unavailable", zap.Error(a.initErr))
		return Advice{Text: FallbackGeneric, Source: SourceFallback}
	}
	if a.gen == nil {
		return Advice{Text: DisabledText, Source: SourceDisabled}
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	text, err := a.gen.Generate(ctx, Prompt(schedule))
	if err == nil {
		text = strings.TrimSpace(text)
		if text == "" {
			err = ErrEmptyResponse
		}
	}
	if err != nil {
		fallback := FallbackNetwork
		if errors.Is(err, ErrEmptyResponse) {
			fallback = FallbackShape
		}
		a.logger.Warn("could not generate advice, using fallback", zap.Error(err))
		return Advice{Text: fallback, Source: SourceFallback}
	}
	return Advice{Text: text, Source: SourceGenerated}
}
