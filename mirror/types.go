package mirror

import "time"

// Emotion is a facial emotion label as reported by the face classifier.
type Emotion string

const (
	EmotionHappy    Emotion = "happy"
	EmotionSad      Emotion = "sad"
	EmotionAngry    Emotion = "angry"
	EmotionFear     Emotion = "fear"
	EmotionSurprise Emotion = "surprise"
	EmotionNeutral  Emotion = "neutral"
	EmotionDisgust  Emotion = "disgust"
)

// VisualObservation is one classified camera sample. Immutable once created;
// only the most recent one is retained.
type VisualObservation struct {
	CapturedAt time.Time
	Dominant   Emotion
	// Spectrum maps emotion label -> raw classifier score. Scores are
	// non-negative and need not sum to 1.
	Spectrum map[string]float64
}

// UtteranceEvent is one completed phrase from the speech engine.
type UtteranceEvent struct {
	CompletedAt time.Time
	Text        string
}

// Impact is the discrete category describing how spoken sentiment aligns
// with the facial emotion at the moment the phrase completed.
type Impact string

const (
	ImpactHighResonance Impact = "High Resonance"
	ImpactMixedSignals  Impact = "Mixed Signals"
	ImpactMasking       Impact = "Masking"
	ImpactSteady        Impact = "Steady"
	ImpactNeutral       Impact = "Neutral"
)

// HistoryEntry records one fused utterance. The emotion is frozen at
// correlation time, not re-read later.
type HistoryEntry struct {
	Time    string  `json:"time"`
	Text    string  `json:"text"`
	Emotion Emotion `json:"emotion"`
	Impact  Impact  `json:"impact"`
}

// Status is the macro-phase of the speech pipeline.
type Status string

const (
	StatusIdle        Status = "Idle"
	StatusCalibrating Status = "Calibrating"
	StatusListening   Status = "Listening"
	StatusAnalyzing   Status = "Analyzing"
	StatusActive      Status = "Active"
	StatusMicError    Status = "Mic Error"
)
