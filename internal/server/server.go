// Package server is the thin HTTP surface over the pipeline. All generation
// logic lives in internal/pipeline; this layer only decodes, runs, encodes.
package server

import (
	"context"
	"errors"
	"log"
	"net/http"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// Server owns the listener lifecycle for the API.
type Server struct {
	srv *http.Server
}

// New wires the handler behind h2c so clients can speak HTTP/2 over plain
// TCP without a TLS terminator in front.
func New(port string, handler http.Handler) *Server {
	return &Server{
		srv: &http.Server{
			Addr:    port,
			Handler: h2c.NewHandler(handler, &http2.Server{}),
		},
	}
}

// Start serves requests until Shutdown is called or the listener fails.
// A clean shutdown is not an error.
func (s *Server) Start() error {
	log.Printf("server: listening on %s", s.srv.Addr)
	if err := s.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests within the context's deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
