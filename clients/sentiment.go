package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// --- Sentiment (/polarity) ---

type polarityReq struct {
	Text string `json:"text"`
}
type polarityResp struct {
	Polarity float64 `json:"polarity"`
}

// Sentiment is the remote polarity scorer, used instead of the in-process
// lexicon when a service URL is configured.
type Sentiment struct {
	h   *HTTP
	url string
}

func NewSentiment(h *HTTP, url string) *Sentiment { return &Sentiment{h: h, url: url} }

// Polarity scores text in [-1, 1].
func (s *Sentiment) Polarity(ctx context.Context, text string) (float64, error) {
	payload, _ := json.Marshal(polarityReq{Text: text})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url+"/polarity", bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.h.c.Do(req)
	if err != nil {
		return 0, fmt.Errorf("sentiment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("sentiment %s: %s", resp.Status, string(body))
	}

	var out polarityResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("sentiment decode: %w", err)
	}
	if out.Polarity < -1 || out.Polarity > 1 {
		return 0, fmt.Errorf("sentiment polarity %v out of range", out.Polarity)
	}
	return out.Polarity, nil
}
