// Package clients holds the HTTP clients for the sidecar model services:
// camera capture, face-emotion classification, speech-to-text and the
// optional remote sentiment scorer.
package clients

import (
	"net/http"
	"time"
)

type HTTP struct{ c *http.Client }

// NewHTTP returns the shared client. Speech listens block server-side for a
// phrase boundary, so the timeout must cover the configured listen window.
func NewHTTP(timeout time.Duration) *HTTP {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTP{c: &http.Client{Timeout: timeout}}
}
