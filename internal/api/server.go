// Package api exposes the hotspot controller over HTTP: a small JSON
// REST surface plus a WebSocket event stream.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/idkspot/idkspot-go/internal/database/models"
	"github.com/idkspot/idkspot-go/internal/services/hotspot"
	"github.com/idkspot/idkspot-go/internal/services/pubsub"
	"github.com/idkspot/idkspot-go/internal/services/stations"
	"github.com/idkspot/idkspot-go/internal/services/wireless"
)

var logger = logrus.WithField("module", "api")

// HotspotService is the slice of the hotspot controller the API needs.
type HotspotService interface {
	Start(ctx context.Context, cfg hotspot.Config) (*hotspot.Session, error)
	Stop(ctx context.Context) error
	Status() hotspot.SessionState
	Snapshot() *hotspot.Session
	ConnectedDevices(ctx context.Context) ([]stations.Device, error)
	Sessions(ctx context.Context, limit int) ([]models.Session, error)
}

// WirelessService is the slice of the interface detector the API needs.
type WirelessService interface {
	Detect(ctx context.Context) ([]wireless.Interface, error)
	Snapshot() []wireless.Interface
	LastScan() time.Time
}

// Options configures the HTTP server.
type Options struct {
	// AllowedOrigin is the browser origin allowed by CORS, in addition
	// to the localhost development origins.
	AllowedOrigin string
	// DefaultSSID fills in start requests that omit the network name.
	DefaultSSID string
	// Debug enables CORS debug logging.
	Debug bool
}

// Server wires the services into HTTP handlers.
type Server struct {
	hotspot  HotspotService
	wireless WirelessService
	events   *pubsub.PubSub
	opts     Options
	upgrader websocket.Upgrader
}

// NewServer creates an HTTP server around the given services.
func NewServer(hs HotspotService, ws WirelessService, events *pubsub.PubSub, opts Options) *Server {
	return &Server{
		hotspot:  hs,
		wireless: ws,
		events:   events,
		opts:     opts,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins for WebSocket
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Router builds the chi router with the full middleware stack.
func (s *Server) Router() http.Handler {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// CORS
	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{s.opts.AllowedOrigin, "http://localhost:3000", "http://localhost:4000"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: true,
		Debug:            s.opts.Debug,
	})
	router.Use(corsMiddleware.Handler)

	// Long-lived endpoints stay outside the request timeout.
	router.Get("/health", s.handleHealth)
	router.Get("/api/events", s.handleEvents)

	router.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		r.Route("/api", func(r chi.Router) {
			r.Get("/interfaces", s.handleInterfaces)
			r.Get("/status", s.handleStatus)
			r.Post("/hotspot/start", s.handleStart)
			r.Post("/hotspot/stop", s.handleStop)
			r.Get("/hotspot/devices", s.handleDevices)
			r.Get("/sessions", s.handleSessions)
		})
	})

	return router
}
