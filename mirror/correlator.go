package mirror

// Judgment pairs an impact label with its advice line. The two always travel
// together; they are never stored or displayed independently.
type Judgment struct {
	Impact Impact
	Advice string
}

// Sentiment thresholds are exclusive: a polarity of exactly +0.1 or -0.1
// does not count as positive or negative.
const (
	positiveThreshold = 0.1
	negativeThreshold = -0.1
)

// Correlate fuses the sentiment polarity of a completed utterance with the
// facial emotion current at that moment. Rules are ordered, first match wins.
func Correlate(polarity float64, visual Emotion) Judgment {
	positive := polarity > positiveThreshold
	negative := polarity < negativeThreshold

	switch {
	case positive && (visual == EmotionHappy || visual == EmotionSurprise):
		return Judgment{ImpactHighResonance, "Great energy match."}
	case positive && (visual == EmotionSad || visual == EmotionAngry || visual == EmotionFear):
		return Judgment{ImpactMixedSignals, "Positive words, tense face."}
	case negative && visual == EmotionHappy:
		return Judgment{ImpactMasking, "Smiling through negative news."}
	case visual == EmotionNeutral:
		return Judgment{ImpactSteady, "Add emotion to emphasize points."}
	default:
		return Judgment{ImpactNeutral, "Keep flowing."}
	}
}
