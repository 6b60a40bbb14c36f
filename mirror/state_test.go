package mirror

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreDefaults(t *testing.T) {
	s := NewStore("test-session", 0)
	snap := s.Snapshot()

	assert.Equal(t, "test-session", snap.SessionID)
	assert.Equal(t, EmotionNeutral, snap.VisualEmotion)
	assert.Equal(t, StatusIdle, snap.Status)
	assert.Equal(t, "Ready. Speak naturally.", snap.Transcript)
	assert.Empty(t, snap.History)
	assert.NotEmpty(t, snap.SessionStart)
}

func TestStoreVisualLastWriteWins(t *testing.T) {
	s := NewStore("s", 0)
	s.SetVisual(VisualObservation{CapturedAt: time.Now(), Dominant: EmotionHappy})
	s.SetVisual(VisualObservation{CapturedAt: time.Now(), Dominant: EmotionSad})

	assert.Equal(t, EmotionSad, s.VisualEmotion())
	assert.Equal(t, EmotionSad, s.Snapshot().VisualEmotion)
}

func TestStoreHistoryNewestFirst(t *testing.T) {
	s := NewStore("s", 0)
	at := time.Date(2026, 8, 31, 10, 0, 1, 0, time.UTC)

	s.CommitUtterance(UtteranceEvent{CompletedAt: at, Text: "u1"}, Correlate(0.5, EmotionHappy), EmotionHappy)
	s.CommitUtterance(UtteranceEvent{CompletedAt: at.Add(time.Second), Text: "u2"}, Correlate(-0.5, EmotionHappy), EmotionHappy)

	snap := s.Snapshot()
	require.Len(t, snap.History, 2)
	assert.Equal(t, "u2", snap.History[0].Text)
	assert.Equal(t, ImpactMasking, snap.History[0].Impact)
	assert.Equal(t, "u1", snap.History[1].Text)
	assert.Equal(t, ImpactHighResonance, snap.History[1].Impact)
	assert.Equal(t, "10:00:01", snap.History[1].Time)
}

func TestStoreHistoryBounded(t *testing.T) {
	s := NewStore("s", 3)
	for i := 0; i < 5; i++ {
		s.CommitUtterance(
			UtteranceEvent{CompletedAt: time.Now(), Text: fmt.Sprintf("u%d", i)},
			Judgment{ImpactNeutral, "Keep flowing."},
			EmotionNeutral,
		)
	}
	snap := s.Snapshot()
	require.Len(t, snap.History, 3)
	// Oldest entries are the ones evicted.
	assert.Equal(t, "u4", snap.History[0].Text)
	assert.Equal(t, "u2", snap.History[2].Text)
}

func TestStoreSnapshotIsolation(t *testing.T) {
	s := NewStore("s", 0)
	s.SetVisual(VisualObservation{Dominant: EmotionHappy, Spectrum: map[string]float64{"happy": 0.9}})
	s.CommitUtterance(UtteranceEvent{CompletedAt: time.Now(), Text: "hello"}, Judgment{ImpactNeutral, "Keep flowing."}, EmotionHappy)

	snap := s.Snapshot()
	snap.Spectrum["happy"] = 0.0
	snap.History[0].Text = "tampered"

	fresh := s.Snapshot()
	assert.Equal(t, 0.9, fresh.Spectrum["happy"])
	assert.Equal(t, "hello", fresh.History[0].Text)
}

// TestStoreGroupedFieldAtomicity hammers the store with utterance commits on
// one goroutine and snapshot reads on another. Every snapshot must pair the
// transcript with its own judgment: transcript == history[0].Text and the
// advice must be the one Correlate produced for history[0].Impact.
func TestStoreGroupedFieldAtomicity(t *testing.T) {
	s := NewStore("s", 0)

	adviceFor := map[Impact]string{
		ImpactHighResonance: "Great energy match.",
		ImpactMasking:       "Smiling through negative news.",
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 2000; i++ {
			// Alternate the two rules so impact and advice flip every commit.
			polarity := 0.5
			if i%2 == 1 {
				polarity = -0.5
			}
			j := Correlate(polarity, EmotionHappy)
			s.CommitUtterance(
				UtteranceEvent{CompletedAt: time.Now(), Text: fmt.Sprintf("utterance-%s", j.Impact)},
				j,
				EmotionHappy,
			)
		}
		close(done)
	}()

	for {
		snap := s.Snapshot()
		if len(snap.History) > 0 {
			head := snap.History[0]
			if snap.Transcript != head.Text {
				t.Fatalf("torn read: transcript %q paired with history head %q", snap.Transcript, head.Text)
			}
			if snap.Impact != head.Impact {
				t.Fatalf("torn read: impact %q paired with history head %q", snap.Impact, head.Impact)
			}
			if snap.Advice != adviceFor[snap.Impact] {
				t.Fatalf("torn read: advice %q paired with impact %q", snap.Advice, snap.Impact)
			}
		}
		select {
		case <-done:
			wg.Wait()
			return
		default:
		}
	}
}
