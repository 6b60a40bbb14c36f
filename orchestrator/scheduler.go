// Package orchestrator drives the two observation workers and owns every
// mutation of the derived mirror fields.
package orchestrator

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Pratham0741-lab/Empathy-Mirror/mirror"
	"github.com/Pratham0741-lab/Empathy-Mirror/sentiment"
	"github.com/Pratham0741-lab/Empathy-Mirror/sources"
)

// Scheduler runs the visual and speech workers concurrently against one
// shared store. The workers never touch each other's field groups: the
// visual worker overwrites the visual fields last-write-wins; the speech
// worker commits transcript, impact, advice and history as one group.
type Scheduler struct {
	store  *mirror.Store
	visual *sources.Visual
	speech *sources.Speech
	scorer sentiment.Scorer

	frameInterval time.Duration
	calibrate     bool

	log *logrus.Entry
}

// New wires a scheduler. calibrate controls whether the speech worker runs
// the ambient-noise baseline before listening.
func New(store *mirror.Store, visual *sources.Visual, speech *sources.Speech, scorer sentiment.Scorer, frameInterval time.Duration, calibrate bool, log *logrus.Entry) *Scheduler {
	if frameInterval <= 0 {
		frameInterval = 50 * time.Millisecond
	}
	return &Scheduler{
		store:         store,
		visual:        visual,
		speech:        speech,
		scorer:        scorer,
		frameInterval: frameInterval,
		calibrate:     calibrate,
		log:           log,
	}
}

// Run starts both workers and blocks until ctx is cancelled and both have
// stopped. A failure in one worker never terminates the other.
func (s *Scheduler) Run(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.runVisual(ctx)
	}()
	go func() {
		defer wg.Done()
		s.runSpeech(ctx)
	}()
	wg.Wait()
}

// runVisual ticks the camera at the configured interval. Recoverable cycle
// errors degrade to "reuse last value"; the worker itself never stops before
// cancellation.
func (s *Scheduler) runVisual(ctx context.Context) {
	log := s.log.WithField("worker", "visual")
	ticker := time.NewTicker(s.frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("visual worker stopped")
			return
		case <-ticker.C:
		}

		cycle := s.visual.Next(ctx)
		switch {
		case cycle.Err == nil:
		case errors.Is(cycle.Err, sources.ErrNoFrame):
			log.WithError(cycle.Err).Debug("camera hiccup, skipping cycle")
		case errors.Is(cycle.Err, sources.ErrNoFace):
			log.Debug("no face this cycle, retaining previous emotion")
		case ctx.Err() != nil:
			continue
		default:
			log.WithError(cycle.Err).Warn("classifier failure, retaining previous emotion")
		}

		if cycle.Obs.Dominant != "" {
			s.store.SetVisual(cycle.Obs)
		}
		if cycle.Fresh {
			log.WithField("emotion", cycle.Obs.Dominant).Debug("visual observation")
		}
	}
}

// runSpeech calibrates once, then loops Listening -> Analyzing until
// cancellation. Calibration failure is fatal to this worker only: it flags
// the status and returns while the visual worker keeps running.
func (s *Scheduler) runSpeech(ctx context.Context) {
	log := s.log.WithField("worker", "speech")

	if s.calibrate {
		s.store.SetStatus(mirror.StatusCalibrating)
		if err := s.speech.Calibrate(ctx); err != nil {
			s.store.SetStatus(mirror.StatusMicError)
			log.WithError(err).Error("calibration failed, speech worker stopped")
			return
		}
		log.Info("calibration complete")
	} else {
		s.store.SetStatus(mirror.StatusActive)
	}

	for {
		select {
		case <-ctx.Done():
			log.Info("speech worker stopped")
			return
		default:
		}

		s.store.SetStatus(mirror.StatusListening)
		utt, err := s.speech.Listen(ctx)
		if err != nil {
			if errors.Is(err, sources.ErrNoSpeech) {
				continue
			}
			if ctx.Err() != nil {
				continue
			}
			log.WithError(err).Warn("listen failed")
			continue
		}

		if !utt.Final {
			// Interim partials surface on the transcript only.
			s.store.SetPartial(utt.Text + "...")
			continue
		}

		s.store.SetStatus(mirror.StatusAnalyzing)
		s.fuse(ctx, utt)
	}
}

// fuse correlates one completed utterance with the visual emotion as
// currently stored and commits the grouped result.
func (s *Scheduler) fuse(ctx context.Context, utt sources.Utterance) {
	visual := s.store.VisualEmotion()

	polarity, err := s.scorer.Polarity(ctx, utt.Text)
	if err != nil {
		s.log.WithError(err).Warn("sentiment scoring failed, treating as flat")
		polarity = 0
	}

	j := mirror.Correlate(polarity, visual)
	entry := s.store.CommitUtterance(
		mirror.UtteranceEvent{CompletedAt: utt.At, Text: utt.Text},
		j,
		visual,
	)

	s.log.WithFields(logrus.Fields{
		"text":     entry.Text,
		"emotion":  entry.Emotion,
		"impact":   entry.Impact,
		"polarity": polarity,
	}).Info("utterance fused")
}
