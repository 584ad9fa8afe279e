package api

import (
	"net/http"

	"github.com/google/uuid"

	"growthpath-insight/database"
	"growthpath-insight/realtime"
)

type createUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" || req.Email == "" {
		respondWithError(w, http.StatusBadRequest, "name and email are required", nil)
		return
	}

	user := &database.User{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Email:     req.Email,
		Interests: "[]",
	}
	if err := s.repo.CreateUser(user); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to create user", err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleRecalculatePercentiles(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.RecalculateAllPercentiles(); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Recalculation failed", err)
		return
	}

	if s.broker != nil {
		s.broker.Broadcast(realtime.EventPercentileRefresh, map[string]string{"status": "complete"})
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "complete"})
}
