package clients

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/Pratham0741-lab/Empathy-Mirror/sources"
)

// --- Camera (/frame) ---

// Camera pulls encoded frames from the capture service.
type Camera struct {
	h   *HTTP
	url string
}

func NewCamera(h *HTTP, url string) *Camera { return &Camera{h: h, url: url} }

// Frame fetches the latest encoded frame. A 503 from the service is a
// transient capture failure and maps to sources.ErrNoFrame.
func (c *Camera) Frame(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+"/frame", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.h.c.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sources.ErrNoFrame, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusServiceUnavailable {
		return nil, sources.ErrNoFrame
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("camera %s: %s", resp.Status, string(body))
	}

	frame, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("camera read: %w", err)
	}
	if len(frame) == 0 {
		return nil, sources.ErrNoFrame
	}
	return frame, nil
}
