package api

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"growthpath-insight/database"
	"growthpath-insight/personality"
	"growthpath-insight/realtime"
)

// Server handles HTTP API requests
type Server struct {
	engine *personality.Engine
	repo   *database.ProfileRepository
	broker *realtime.Broker
}

// NewServer creates a new API server instance
func NewServer(engine *personality.Engine, repo *database.ProfileRepository, broker *realtime.Broker) *Server {
	return &Server{
		engine: engine,
		repo:   repo,
		broker: broker,
	}
}

// Start starts the HTTP server on the specified port
func (s *Server) Start(port int) error {
	mux := http.NewServeMux()

	// Register routes
	mux.Handle("GET /api/events", s.broker) // SSE Endpoint

	// User provisioning and personality reads
	mux.HandleFunc("POST /api/users", s.handleCreateUser)
	mux.HandleFunc("GET /api/users/{id}/personality", s.handleGetPersonality)
	mux.HandleFunc("GET /api/users/{id}/percentiles", s.handleGetPercentiles)
	mux.HandleFunc("POST /api/users/{id}/analyze", s.handleAnalyze)

	// Behavioral tracking routes
	mux.HandleFunc("POST /api/track/assessment", s.handleTrackAssessment)
	mux.HandleFunc("POST /api/track/goal", s.handleTrackGoal)
	mux.HandleFunc("POST /api/goals/{id}/complete", s.handleCompleteGoal)
	mux.HandleFunc("POST /api/track/achievement", s.handleTrackAchievement)
	mux.HandleFunc("POST /api/track/team", s.handleTrackTeam)
	mux.HandleFunc("POST /api/track/opportunity", s.handleTrackOpportunity)
	mux.HandleFunc("POST /api/track/chat", s.handleTrackChat)

	// Chat transcript ingress (WebSocket)
	mux.HandleFunc("GET /ws/chat", s.handleChatSocket)

	// Admin routes
	mux.HandleFunc("POST /api/admin/percentiles/recalculate", s.handleRecalculatePercentiles)

	mux.HandleFunc("GET /health", s.handleHealth)

	// Add middleware
	handler := s.corsMiddleware(s.loggingMiddleware(mux))

	serverAddr := fmt.Sprintf("0.0.0.0:%d", port)
	log.Printf("🚀 API Server starting on %s", serverAddr)
	return http.ListenAndServe(serverAddr, handler)
}

// Middleware
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %v", r.Method, r.URL.Path, time.Since(start))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Handlers are distributed across multiple files:
// - handlers_tracking.go: behavioral event ingestion
// - handlers_personality.go: analysis and percentile reads
// - handlers_admin.go: user provisioning and batch recalculation
// - chat_ws.go: WebSocket transcript ingress
