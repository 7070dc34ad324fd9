package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"passport_parser/internal/handlers"
)

type Server struct {
	httpServer *http.Server
}

// NewServer mounts /health openly and /parse behind guard. A nil guard
// leaves /parse unregistered.
func NewServer(port string, h *handlers.Handlers, guard func(http.Handler) http.Handler) *Server {
	mux := http.NewServeMux()

	if h != nil {
		mux.HandleFunc("/health", h.Health)
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/" {
				http.NotFound(w, r)
				return
			}
			_, _ = w.Write([]byte("passport parser is running"))
		})
		if guard != nil {
			mux.Handle("/parse", guard(http.HandlerFunc(h.Parse)))
		} else {
			log.Printf("[SERVER][WARN] no API tokens configured, /parse disabled")
		}
	}

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%s", port),
			Handler:      mux,
			ReadTimeout:  60 * time.Second,
			WriteTimeout: 5 * time.Minute,
			IdleTimeout:  60 * time.Second,
		},
	}
}

func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("[SERVER] listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shCtx)
	case err := <-errCh:
		return err
	}
}
