package sources

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Pratham0741-lab/Empathy-Mirror/mirror"
)

// FrameGrabber captures one encoded frame from the camera service.
type FrameGrabber interface {
	Frame(ctx context.Context) ([]byte, error)
}

// FaceClassifier runs facial emotion inference on one encoded frame.
// Implementations report an unfaced frame as ErrNoFace.
type FaceClassifier interface {
	Classify(ctx context.Context, frame []byte) (mirror.VisualObservation, error)
}

// VisualCycle is the outcome of one camera tick. Obs is always the best
// observation available, which on a failed or skipped cycle is the previous
// one; Fresh marks cycles where the classifier actually ran.
type VisualCycle struct {
	Obs   mirror.VisualObservation
	Fresh bool
	Err   error
}

// Visual wraps a frame grabber and a face classifier into a throttled
// observation source. Classification runs once every classifyEvery cycles
// (tick-counter duty cycle); a frame is still captured on every cycle so the
// display stream never starves.
type Visual struct {
	grab     FrameGrabber
	classify FaceClassifier

	classifyEvery int
	ticks         int
	last          mirror.VisualObservation

	frameMu sync.RWMutex
	frame   []byte
}

// NewVisual builds the visual source. classifyEvery < 1 classifies on every
// cycle.
func NewVisual(grab FrameGrabber, classify FaceClassifier, classifyEvery int) *Visual {
	if classifyEvery < 1 {
		classifyEvery = 1
	}
	return &Visual{
		grab:          grab,
		classify:      classify,
		classifyEvery: classifyEvery,
		last: mirror.VisualObservation{
			CapturedAt: time.Now(),
			Dominant:   mirror.EmotionNeutral,
			Spectrum:   map[string]float64{},
		},
	}
}

// Next runs one camera cycle. It never panics past this boundary: a capture
// or classifier failure retains the previous observation and surfaces the
// error kind for the caller to log. Next is single-caller; only LastFrame is
// safe for concurrent use.
func (v *Visual) Next(ctx context.Context) VisualCycle {
	frame, err := v.grab.Frame(ctx)
	if err != nil {
		return VisualCycle{Obs: v.last, Err: fmt.Errorf("grab frame: %w", err)}
	}
	v.setFrame(frame)

	v.ticks++
	if v.ticks%v.classifyEvery != 0 {
		return VisualCycle{Obs: v.last}
	}

	obs, err := v.classify.Classify(ctx, frame)
	if err != nil {
		return VisualCycle{Obs: v.last, Err: fmt.Errorf("classify frame: %w", err)}
	}
	if obs.CapturedAt.IsZero() {
		obs.CapturedAt = time.Now()
	}
	v.last = obs
	return VisualCycle{Obs: obs, Fresh: true}
}

// LastFrame returns the most recently captured encoded frame, or nil before
// the first successful capture. Safe for concurrent use by the display layer.
func (v *Visual) LastFrame() []byte {
	v.frameMu.RLock()
	defer v.frameMu.RUnlock()
	return v.frame
}

func (v *Visual) setFrame(frame []byte) {
	v.frameMu.Lock()
	v.frame = frame
	v.frameMu.Unlock()
}
