// Package sentiment scores spoken text for polarity. The default scorer is a
// small in-process lexicon; a remote scorer can be substituted when a
// sentiment service is configured.
package sentiment

import (
	"context"
	"strings"
)

// Scorer produces a sentiment polarity in [-1, 1] for a piece of text.
type Scorer interface {
	Polarity(ctx context.Context, text string) (float64, error)
}

var positiveWords = map[string]struct{}{
	"good": {}, "great": {}, "wonderful": {}, "excellent": {}, "amazing": {},
	"fantastic": {}, "awesome": {}, "love": {}, "loved": {}, "like": {},
	"happy": {}, "glad": {}, "excited": {}, "proud": {}, "beautiful": {},
	"perfect": {}, "best": {}, "nice": {}, "win": {}, "won": {},
	"success": {}, "successful": {}, "brilliant": {}, "delighted": {},
	"thrilled": {}, "grateful": {}, "fun": {}, "enjoy": {}, "enjoyed": {},
}

var negativeWords = map[string]struct{}{
	"bad": {}, "terrible": {}, "awful": {}, "horrible": {}, "worst": {},
	"sad": {}, "angry": {}, "hate": {}, "hated": {}, "upset": {},
	"worried": {}, "scared": {}, "afraid": {}, "fail": {}, "failed": {},
	"failure": {}, "wrong": {}, "problem": {}, "broken": {}, "lost": {},
	"lose": {}, "pain": {}, "painful": {}, "disaster": {}, "miserable": {},
	"disappointed": {}, "disappointing": {}, "annoying": {}, "ugly": {},
}

// negators flip the sign of the sentiment word that follows them.
var negators = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "dont": {}, "didnt": {},
	"isnt": {}, "wasnt": {}, "cant": {}, "wont": {}, "nothing": {},
}

// intensifiers boost the sentiment word that follows them.
var intensifiers = map[string]struct{}{
	"very": {}, "really": {}, "so": {}, "extremely": {}, "absolutely": {},
	"totally": {}, "completely": {},
}

// Lexicon is a deterministic word-list polarity scorer.
type Lexicon struct{}

// NewLexicon returns the in-process scorer.
func NewLexicon() *Lexicon { return &Lexicon{} }

// Polarity averages the signed weight of the sentiment-bearing tokens in
// text, clamped to [-1, 1]. Text with no sentiment-bearing token scores 0.
func (l *Lexicon) Polarity(_ context.Context, text string) (float64, error) {
	tokens := tokenize(text)

	var sum float64
	var hits int
	for i, tok := range tokens {
		weight := 0.0
		if _, ok := positiveWords[tok]; ok {
			weight = 1.0
		} else if _, ok := negativeWords[tok]; ok {
			weight = -1.0
		}
		if weight == 0 {
			continue
		}
		if i > 0 {
			if _, ok := intensifiers[tokens[i-1]]; ok {
				weight *= 1.5
			}
		}
		// A negator within the two preceding tokens flips the sign:
		// "not very happy" still reads negative.
		for back := i - 1; back >= 0 && back >= i-2; back-- {
			if _, ok := negators[tokens[back]]; ok {
				weight = -weight
				break
			}
		}
		sum += weight
		hits++
	}
	if hits == 0 {
		return 0, nil
	}
	return clamp(sum / float64(hits)), nil
}

// tokenize lowercases and strips punctuation so "wonderful!" and "don't"
// match their lexicon forms.
func tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		case r == '\t', r == '\n':
			return ' '
		default:
			return -1
		}
	}, text)
	return strings.Fields(cleaned)
}

func clamp(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
