// Package api pkg/api/server.go exposes the synchronization layer over
// HTTP: latest snapshot, connection status, manual refresh, compliance
// history and a WebSocket push of channel publishes. The server is itself
// just another subscriber — it retains the latest snapshot because the
// engine deliberately does not.
package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/govradar/govradar/pkg/channels"
	"github.com/govradar/govradar/pkg/db"
	httpx "github.com/govradar/govradar/pkg/http"
	"github.com/govradar/govradar/pkg/models"
)

const refreshCooldown = 5 * time.Second

// EngineControl is the slice of the sync engine the API needs.
type EngineControl interface {
	RefreshNow(ctx context.Context) error
	ConnectionStatus() models.ConnectionStatus
}

// StatusResponse is the /api/status payload.
type StatusResponse struct {
	Connection  models.ConnectionStatus `json:"connection"`
	LastUpdate  *time.Time              `json:"last_update,omitempty"`
	Subscribers map[string]int          `json:"subscribers"`
}

// Server is the HTTP/WebSocket gateway.
type Server struct {
	mu     sync.RWMutex
	latest *models.Snapshot

	engine   EngineControl
	registry *channels.Registry
	store    db.Service // nil disables the history endpoint

	router     *mux.Router
	limiter    *rate.Limiter
	httpServer *http.Server
	unsub      func()
}

// NewServer creates the gateway and subscribes it to the dashboard
// channel. The store may be nil.
func NewServer(engine EngineControl, registry *channels.Registry, store db.Service) *Server {
	s := &Server{
		engine:   engine,
		registry: registry,
		store:    store,
		router:   mux.NewRouter(),
		limiter:  rate.NewLimiter(rate.Every(refreshCooldown), 1),
	}

	s.unsub = registry.Subscribe(models.ChannelDashboard, func(payload interface{}) {
		snapshot, ok := payload.(models.Snapshot)
		if !ok {
			return
		}

		s.mu.Lock()
		s.latest = &snapshot
		s.mu.Unlock()
	})

	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(httpx.CommonMiddleware)

	s.router.HandleFunc("/api/dashboard", s.getDashboard).Methods("GET")
	s.router.HandleFunc("/api/status", s.getStatus).Methods("GET")
	s.router.HandleFunc("/api/refresh", s.postRefresh).Methods("POST")
	s.router.HandleFunc("/api/compliance/history", s.getComplianceHistory).Methods("GET")
	s.router.HandleFunc("/api/ws", s.handleWebSocket).Methods("GET")
}

// Router returns the configured handler, mostly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) getDashboard(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	latest := s.latest
	s.mu.RUnlock()

	if latest == nil {
		http.Error(w, "No snapshot available yet", http.StatusNotFound)
		return
	}

	writeJSON(w, latest)
}

func (s *Server) getStatus(w http.ResponseWriter, _ *http.Request) {
	resp := StatusResponse{
		Connection:  s.engine.ConnectionStatus(),
		Subscribers: make(map[string]int),
	}

	s.mu.RLock()
	if s.latest != nil {
		lastUpdate := s.latest.LastUpdate
		resp.LastUpdate = &lastUpdate
	}
	s.mu.RUnlock()

	for _, name := range s.registry.Channels() {
		resp.Subscribers[name] = s.registry.SubscriberCount(name)
	}

	writeJSON(w, resp)
}

func (s *Server) postRefresh(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.Allow() {
		http.Error(w, "Refresh rate limit exceeded", http.StatusTooManyRequests)
		return
	}

	if err := s.engine.RefreshNow(r.Context()); err != nil {
		log.Printf("Manual refresh failed: %v", err)
		http.Error(w, "Refresh failed", http.StatusBadGateway)

		return
	}

	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) getComplianceHistory(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "History not available", http.StatusNotFound)
		return
	}

	limit := 0

	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}

		limit = n
	}

	points, err := s.store.GetComplianceHistory(limit)
	if err != nil {
		log.Printf("Error reading compliance history: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return
	}

	if points == nil {
		points = []db.CompliancePoint{}
	}

	writeJSON(w, points)
}

// Start serves HTTP on addr until Shutdown.
func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s.httpServer.ListenAndServe()
}

// Shutdown stops the HTTP server and detaches the dashboard subscription.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.unsub != nil {
		s.unsub()
	}

	if s.httpServer == nil {
		return nil
	}

	return s.httpServer.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
