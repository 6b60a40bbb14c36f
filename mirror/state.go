package mirror

import (
	"sync"
	"time"
)

// DefaultHistoryLimit bounds the session log. The oldest entries are dropped
// once the limit is reached.
const DefaultHistoryLimit = 500

const sessionTimeFormat = "2006-01-02 15:04"

// Store is the single shared aggregate for one mirror session.
//
// Writer discipline: the visual worker owns the visual fields (last-write-wins
// overwrites, no merge); the fusion scheduler owns transcript, impact, advice,
// history and status. Transcript, impact, advice and the history prepend are
// committed under one critical section so no reader can pair an utterance with
// another utterance's judgment. Readers only ever receive Snapshot copies.
type Store struct {
	mu sync.RWMutex

	sessionID    string
	sessionStart time.Time
	historyLimit int

	visualEmotion Emotion
	spectrum      map[string]float64
	observedAt    time.Time

	transcript string
	impact     Impact
	advice     string
	history    []HistoryEntry
	status     Status
}

// Snapshot is an internally consistent copy of the aggregate at one instant.
// Visual fields may lag the writers by up to one analysis interval.
type Snapshot struct {
	SessionID     string             `json:"session_id"`
	SessionStart  string             `json:"session_start"`
	VisualEmotion Emotion            `json:"visual_emotion"`
	Spectrum      map[string]float64 `json:"emotion_spectrum"`
	Transcript    string             `json:"current_transcript"`
	Impact        Impact             `json:"impact_label"`
	Advice        string             `json:"advice"`
	History       []HistoryEntry     `json:"history"`
	Status        Status             `json:"status"`
}

// NewStore creates the session aggregate with its idle defaults.
// historyLimit <= 0 falls back to DefaultHistoryLimit.
func NewStore(sessionID string, historyLimit int) *Store {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &Store{
		sessionID:     sessionID,
		sessionStart:  time.Now(),
		historyLimit:  historyLimit,
		visualEmotion: EmotionNeutral,
		spectrum:      map[string]float64{},
		transcript:    "Ready. Speak naturally.",
		impact:        ImpactNeutral,
		advice:        "System is ready.",
		status:        StatusIdle,
	}
}

// SetVisual overwrites the visual fields with the latest observation.
func (s *Store) SetVisual(obs VisualObservation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visualEmotion = obs.Dominant
	s.spectrum = obs.Spectrum
	s.observedAt = obs.CapturedAt
}

// VisualEmotion returns the emotion as currently stored. The fusion path
// reads this value once and freezes it into the history entry.
func (s *Store) VisualEmotion() Emotion {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.visualEmotion
}

// SetPartial surfaces an interim low-confidence transcript. Partials never
// touch history or the impact fields.
func (s *Store) SetPartial(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = text
}

// SetStatus records the current phase of the speech pipeline.
func (s *Store) SetStatus(st Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = st
}

// Status returns the current pipeline phase.
func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// CommitUtterance records a fused utterance: transcript, impact, advice and
// the history prepend all land in one critical section. visual is the emotion
// the correlator actually used, frozen into the entry.
func (s *Store) CommitUtterance(u UtteranceEvent, j Judgment, visual Emotion) HistoryEntry {
	entry := HistoryEntry{
		Time:    u.CompletedAt.Format("15:04:05"),
		Text:    u.Text,
		Emotion: visual,
		Impact:  j.Impact,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = u.Text
	s.impact = j.Impact
	s.advice = j.Advice
	s.history = append([]HistoryEntry{entry}, s.history...)
	if len(s.history) > s.historyLimit {
		s.history = s.history[:s.historyLimit]
	}
	return entry
}

// Snapshot returns a deep copy of the aggregate. Mutating the returned value
// has no effect on the store.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	spectrum := make(map[string]float64, len(s.spectrum))
	for k, v := range s.spectrum {
		spectrum[k] = v
	}
	history := make([]HistoryEntry, len(s.history))
	copy(history, s.history)

	return Snapshot{
		SessionID:     s.sessionID,
		SessionStart:  s.sessionStart.Format(sessionTimeFormat),
		VisualEmotion: s.visualEmotion,
		Spectrum:      spectrum,
		Transcript:    s.transcript,
		Impact:        s.impact,
		Advice:        s.advice,
		History:       history,
		Status:        s.status,
	}
}
