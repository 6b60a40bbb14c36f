// Package server exposes the read-only viewer surface: the JSON state
// snapshot, the MJPEG frame stream and the downloadable session report.
// It only reads store snapshots and the latest encoded frame; it never
// participates in the producer race.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Pratham0741-lab/Empathy-Mirror/mirror"
)

const streamInterval = 66 * time.Millisecond

// FrameProvider yields the latest encoded frame for the display stream.
type FrameProvider interface {
	LastFrame() []byte
}

type Server struct {
	store  *mirror.Store
	frames FrameProvider
	log    *logrus.Entry
}

func New(store *mirror.Store, frames FrameProvider, log *logrus.Entry) *Server {
	return &Server{store: store, frames: frames, log: log}
}

// Handler returns the route mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/data", s.handleData)
	mux.HandleFunc("/video_feed", s.handleVideoFeed)
	mux.HandleFunc("/download", s.handleDownload)
	mux.HandleFunc("/healthz", s.handleHealthz)
	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.store.Snapshot()); err != nil {
		s.log.WithError(err).Warn("encode snapshot")
	}
}

// handleVideoFeed streams the latest frame as multipart MJPEG until the
// client goes away.
func (s *Server) handleVideoFeed(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")

	ticker := time.NewTicker(streamInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
		frame := s.frames.LastFrame()
		if frame == nil {
			continue
		}
		if _, err := fmt.Fprintf(w, "--frame\r\nContent-Type: image/jpeg\r\nContent-Length: %d\r\n\r\n", len(frame)); err != nil {
			return
		}
		if _, err := w.Write(frame); err != nil {
			return
		}
		if _, err := fmt.Fprint(w, "\r\n"); err != nil {
			return
		}
		flusher.Flush()
	}
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	report := mirror.RenderReport(s.store.Snapshot())
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="report.txt"`)
	if _, err := w.Write([]byte(report)); err != nil {
		s.log.WithError(err).Warn("write report")
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
