package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/zishang520/socket.io/v2/socket"

	"github.com/vk/metrograph/internal/ctxlog"
	"github.com/vk/metrograph/internal/mapservice"
)

// Options configures the HTTP surface.
type Options struct {
	// AllowedOrigins lists the origins the browser map tool may be served
	// from. Empty allows any origin.
	AllowedOrigins []string
}

// Server routes HTTP and socket.io traffic to a map service.
type Server struct {
	ctx    context.Context
	svc    *mapservice.Service
	router *mux.Router
	io     *socket.Server
	opts   Options
}

// NewServer builds the router and subscribes to map changes. ctx supplies
// the logger used by request handlers.
func NewServer(ctx context.Context, svc *mapservice.Service, opts Options) *Server {
	s := &Server{
		ctx:    ctx,
		svc:    svc,
		router: mux.NewRouter(),
		io:     socket.NewServer(nil, nil),
		opts:   opts,
	}
	s.registerRoutes()
	s.registerRealtime()
	return s
}

func (s *Server) registerRoutes() {
	r := s.router
	r.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/map", s.handleMap).Methods(http.MethodGet)

	r.HandleFunc("/api/stations", s.handleAddStation).Methods(http.MethodPost)
	r.HandleFunc("/api/stations/{name}", s.handleDeleteStation).Methods(http.MethodDelete)

	r.HandleFunc("/api/lines", s.handleListLines).Methods(http.MethodGet)
	r.HandleFunc("/api/lines", s.handleAddLine).Methods(http.MethodPost)
	r.HandleFunc("/api/lines/{id}/stations", s.handleLineStations).Methods(http.MethodGet)

	r.HandleFunc("/api/edges", s.handleAddEdge).Methods(http.MethodPost)
	r.HandleFunc("/api/edges/{from}/{to}", s.handleEdgeInfo).Methods(http.MethodGet)

	r.HandleFunc("/api/route", s.handleFindRoute).Methods(http.MethodPost)
	r.HandleFunc("/api/route", s.handleCurrentRoute).Methods(http.MethodGet)

	r.HandleFunc("/api/clear", s.handleClear).Methods(http.MethodPost)
	r.HandleFunc("/api/reload", s.handleReload).Methods(http.MethodPost)

	r.PathPrefix("/socket.io/").Handler(s.io.ServeHandler(nil))
	r.Use(s.logRequests)
}

// Handler returns the root handler with CORS applied.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   s.opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: false,
	})
	return c.Handler(s.router)
}

// Close disconnects socket.io clients.
func (s *Server) Close() {
	s.io.Close(nil)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxlog.FromContext(s.ctx).Debug("HTTP request.", "method", r.Method, "path", r.URL.Path, "remote_addr", r.RemoteAddr)
		next.ServeHTTP(w, r)
	})
}
