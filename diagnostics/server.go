package diagnostics

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server mounts the dashboard's HTTP surface on one chi.Router, grounded
// on NikeGunn-tutu/internal/api/server.go's Handler() shape (middleware
// stack, then route registration).
type Server struct {
	Hub *Hub
}

// NewServer constructs a Server around hub. hub may be nil, in which
// case /ws responds 404 (no live dashboard configured).
func NewServer(hub *Hub) *Server {
	return &Server{Hub: hub}
}

// Handler returns the chi router with /metrics, /ws, and /healthz
// mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Minute))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		if s.Hub == nil {
			http.NotFound(w, r)
			return
		}
		s.Hub.ServeHTTP(w, r)
	})

	return r
}
