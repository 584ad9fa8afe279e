package api

import (
	"net/http"
)

func (s *Server) handleGetPersonality(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")

	user, err := s.repo.GetUser(userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load user", err)
		return
	}
	if user == nil {
		respondWithError(w, http.StatusNotFound, "User not found", nil)
		return
	}

	minLimit, maxLimit := 1, 50
	limit := getIntParam(r, "history", 10, &minLimit, &maxLimit)

	analyses, err := s.engine.LatestAnalyses(userID, limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load analysis history", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":            user.ID,
		"personality_type":   user.PersonalityType,
		"personality_scores": user.PersonalityScores,
		"interests":          user.Interests,
		"history":            analyses,
	})
}

func (s *Server) handleGetPercentiles(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")

	percentiles, err := s.engine.GetUserPercentiles(userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load percentiles", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":     userID,
		"percentiles": percentiles,
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")

	result, err := s.engine.AnalyzeUserPersonality(r.Context(), userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Analysis failed", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
