package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pratham0741-lab/Empathy-Mirror/mirror"
)

type staticFrames struct{ frame []byte }

func (s staticFrames) LastFrame() []byte { return s.frame }

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func testStore(t *testing.T) *mirror.Store {
	t.Helper()
	store := mirror.NewStore("sess-1", 0)
	store.SetVisual(mirror.VisualObservation{
		CapturedAt: time.Now(),
		Dominant:   mirror.EmotionHappy,
		Spectrum:   map[string]float64{"happy": 0.9},
	})
	store.CommitUtterance(
		mirror.UtteranceEvent{CompletedAt: time.Date(2026, 8, 31, 10, 0, 1, 0, time.UTC), Text: "hi"},
		mirror.Judgment{Impact: mirror.ImpactSteady, Advice: "Add emotion to emphasize points."},
		mirror.EmotionNeutral,
	)
	return store
}

func TestHandleData(t *testing.T) {
	srv := New(testStore(t), staticFrames{}, testLogger())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/data", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "happy", body["visual_emotion"])
	assert.Equal(t, "hi", body["current_transcript"])
	assert.Equal(t, "Steady", body["impact_label"])
	assert.Contains(t, body, "emotion_spectrum")
	assert.Contains(t, body, "session_start")
	assert.Contains(t, body, "history")
	assert.Contains(t, body, "status")
	assert.Contains(t, body, "advice")
}

func TestHandleDownload(t *testing.T) {
	srv := New(testStore(t), staticFrames{}, testLogger())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/download", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "report.txt")
	body := rec.Body.String()
	assert.Contains(t, body, "SESSION REPORT")
	assert.Contains(t, body, "[10:00:01] hi")
	assert.Contains(t, body, "Face: neutral | Impact: Steady")
}

func TestHandleHealthz(t *testing.T) {
	srv := New(testStore(t), staticFrames{}, testLogger())
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestHandleVideoFeedStreamsFrames(t *testing.T) {
	srv := New(testStore(t), staticFrames{frame: []byte("jpegdata")}, testLogger())
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/video_feed", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Contains(t, resp.Header.Get("Content-Type"), "multipart/x-mixed-replace")

	buf := make([]byte, 256)
	n, err := io.ReadFull(resp.Body, buf[:64])
	if err != nil && n == 0 {
		t.Fatalf("no stream data: %v", err)
	}
	chunk := string(buf[:n])
	assert.Contains(t, chunk, "--frame")
	assert.Contains(t, chunk, "image/jpeg")
}
