// Package replay drives scripted sessions through the correlator and the
// shared store synchronously, for deterministic end-to-end runs without
// camera or microphone hardware.
package replay

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Pratham0741-lab/Empathy-Mirror/mirror"
	"github.com/Pratham0741-lab/Empathy-Mirror/sentiment"
)

// Step is one scripted event: either a visual observation or an utterance.
type Step struct {
	Emotion  string             `yaml:"emotion,omitempty"`
	Spectrum map[string]float64 `yaml:"spectrum,omitempty"`
	Say      string             `yaml:"say,omitempty"`
}

// Fixture is a scripted session.
type Fixture struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Load parses a fixture file.
func Load(path string) (*Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	var f Fixture
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("fixture %q has no steps", f.Name)
	}
	for i, s := range f.Steps {
		if s.Emotion == "" && s.Say == "" {
			return nil, fmt.Errorf("fixture %q step %d: needs emotion or say", f.Name, i)
		}
	}
	return &f, nil
}

// Run feeds the fixture through the store and correlator in order and
// returns the final snapshot.
func (f *Fixture) Run(ctx context.Context, store *mirror.Store, scorer sentiment.Scorer) (mirror.Snapshot, error) {
	for i, step := range f.Steps {
		if step.Emotion != "" {
			store.SetVisual(mirror.VisualObservation{
				CapturedAt: time.Now(),
				Dominant:   mirror.Emotion(step.Emotion),
				Spectrum:   step.Spectrum,
			})
		}
		if step.Say != "" {
			polarity, err := scorer.Polarity(ctx, step.Say)
			if err != nil {
				return mirror.Snapshot{}, fmt.Errorf("step %d: polarity: %w", i, err)
			}
			visual := store.VisualEmotion()
			j := mirror.Correlate(polarity, visual)
			store.CommitUtterance(
				mirror.UtteranceEvent{CompletedAt: time.Now(), Text: step.Say},
				j,
				visual,
			)
		}
	}
	return store.Snapshot(), nil
}
