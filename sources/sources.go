// Package sources adapts the capture/inference collaborators into the two
// observation streams the fusion scheduler consumes. Each cycle returns a
// typed result; recoverable failures are reported as error kinds, never
// panics, so the scheduler can apply the documented degradation.
package sources

import "errors"

// Recoverable per-cycle error kinds. The scheduler matches these with
// errors.Is and degrades to "no update this cycle".
var (
	// ErrNoFrame reports a transient camera hiccup.
	ErrNoFrame = errors.New("no frame available")
	// ErrNoFace reports that the classifier found no face in the frame.
	ErrNoFace = errors.New("no face detected")
	// ErrNoSpeech reports that the engine could not confidently transcribe.
	ErrNoSpeech = errors.New("speech not recognized")
)
