package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Pratham0741-lab/Empathy-Mirror/sources"
)

// --- Speech engine (/calibrate, /listen) ---

type listenReq struct {
	TimeoutMS int64 `json:"timeout_ms"`
}
type listenResp struct {
	Text  string `json:"text"`
	Final bool   `json:"final"`
}

// Speech talks to the speech-to-text service.
type Speech struct {
	h   *HTTP
	url string
}

func NewSpeech(h *HTTP, url string) *Speech { return &Speech{h: h, url: url} }

// Calibrate runs the service's one-time ambient noise baseline.
func (s *Speech) Calibrate(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url+"/calibrate", nil)
	if err != nil {
		return err
	}

	resp, err := s.h.c.Do(req)
	if err != nil {
		return fmt.Errorf("speech calibrate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("speech calibrate %s: %s", resp.Status, string(body))
	}
	return nil
}

// Listen blocks server-side until a phrase boundary or the given timeout.
// A 204 means the engine could not confidently transcribe and maps to
// sources.ErrNoSpeech. Results with final=false are interim partials.
func (s *Speech) Listen(ctx context.Context, timeout time.Duration) (sources.Utterance, error) {
	payload, _ := json.Marshal(listenReq{TimeoutMS: timeout.Milliseconds()})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url+"/listen", bytes.NewReader(payload))
	if err != nil {
		return sources.Utterance{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.h.c.Do(req)
	if err != nil {
		return sources.Utterance{}, fmt.Errorf("speech listen: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return sources.Utterance{}, sources.ErrNoSpeech
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return sources.Utterance{}, fmt.Errorf("speech listen %s: %s", resp.Status, string(body))
	}

	var out listenResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return sources.Utterance{}, fmt.Errorf("speech decode: %w", err)
	}
	return sources.Utterance{Text: out.Text, Final: out.Final, At: time.Now()}, nil
}
