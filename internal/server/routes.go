package server

import (
	"net/http"

	"foliogen/internal/middleware"
	"foliogen/internal/pipeline"
)

func NewMux(p *pipeline.Pipeline) http.Handler {
	h := &GenerateHandler{Pipeline: p}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/generate", h.HandleGenerate)
	mux.HandleFunc("/api/generate/stream", h.HandleGenerateWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	return middleware.CORS(mux)
}
