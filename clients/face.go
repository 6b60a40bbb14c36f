package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/Pratham0741-lab/Empathy-Mirror/mirror"
	"github.com/Pratham0741-lab/Empathy-Mirror/sources"
)

// --- Face classifier (/classify) ---

type FaceScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}
type FaceResp struct {
	Emotions        []FaceScore `json:"emotions"`
	DominantEmotion string      `json:"dominant_emotion"`
}

// Face runs facial-emotion inference against the classifier service.
type Face struct {
	h   *HTTP
	url string
}

func NewFace(h *HTTP, url string) *Face { return &Face{h: h, url: url} }

// Classify uploads one encoded frame and returns the observation. A 422 from
// the service means no face was detected and maps to sources.ErrNoFace.
func (f *Face) Classify(ctx context.Context, frame []byte) (mirror.VisualObservation, error) {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	fw, err := w.CreateFormFile("frame", "frame.jpg")
	if err != nil {
		return mirror.VisualObservation{}, err
	}
	if _, err = fw.Write(frame); err != nil {
		return mirror.VisualObservation{}, err
	}
	if err = w.Close(); err != nil {
		return mirror.VisualObservation{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url+"/classify", &b)
	if err != nil {
		return mirror.VisualObservation{}, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := f.h.c.Do(req)
	if err != nil {
		return mirror.VisualObservation{}, fmt.Errorf("face: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnprocessableEntity {
		return mirror.VisualObservation{}, sources.ErrNoFace
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return mirror.VisualObservation{}, fmt.Errorf("face %s: %s", resp.Status, string(body))
	}

	var out FaceResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return mirror.VisualObservation{}, fmt.Errorf("face decode: %w", err)
	}
	if out.DominantEmotion == "" {
		return mirror.VisualObservation{}, sources.ErrNoFace
	}

	obs := mirror.VisualObservation{
		CapturedAt: time.Now(),
		Dominant:   mirror.Emotion(out.DominantEmotion),
		Spectrum:   make(map[string]float64, len(out.Emotions)),
	}
	for _, e := range out.Emotions {
		obs.Spectrum[e.Label] = e.Score
	}
	return obs, nil
}
