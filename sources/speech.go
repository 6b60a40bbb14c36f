package sources

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// SpeechEngine is the speech-to-text collaborator. Listen blocks until a
// phrase boundary or the engine-side timeout; implementations report an
// unconfident transcription as ErrNoSpeech.
type SpeechEngine interface {
	Calibrate(ctx context.Context) error
	Listen(ctx context.Context, timeout time.Duration) (Utterance, error)
}

// Utterance is one transcription result. Final marks a completed phrase;
// non-final results are interim partials and must never reach history.
type Utterance struct {
	Text  string
	Final bool
	At    time.Time
}

// Speech adapts the speech engine into the utterance stream. It filters
// empty and whitespace-only transcriptions so they never reach the
// correlator.
type Speech struct {
	engine  SpeechEngine
	timeout time.Duration
}

// NewSpeech builds the speech source with the per-listen timeout bound.
func NewSpeech(engine SpeechEngine, timeout time.Duration) *Speech {
	return &Speech{engine: engine, timeout: timeout}
}

// Calibrate runs the one-time ambient noise baseline. A failure here is
// fatal to the speech worker only.
func (s *Speech) Calibrate(ctx context.Context) error {
	if err := s.engine.Calibrate(ctx); err != nil {
		return fmt.Errorf("calibrate: %w", err)
	}
	return nil
}

// Listen blocks for the next transcription attempt. Empty or whitespace-only
// text degrades to ErrNoSpeech regardless of what the engine reported.
func (s *Speech) Listen(ctx context.Context) (Utterance, error) {
	u, err := s.engine.Listen(ctx, s.timeout)
	if err != nil {
		return Utterance{}, err
	}
	u.Text = strings.TrimSpace(u.Text)
	if u.Text == "" {
		return Utterance{}, ErrNoSpeech
	}
	if u.At.IsZero() {
		u.At = time.Now()
	}
	return u, nil
}
