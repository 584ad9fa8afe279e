package api

import (
	"net/http"
	"strconv"

	"growthpath-insight/personality"
)

type assessmentRequest struct {
	UserID         string `json:"user_id"`
	AssessmentType string `json:"assessment_type"`
	QuestionID     string `json:"question_id"`
	Response       string `json:"response"`
}

func (s *Server) handleTrackAssessment(w http.ResponseWriter, r *http.Request) {
	var req assessmentRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.UserID == "" || req.Response == "" {
		respondWithError(w, http.StatusBadRequest, "user_id and response are required", nil)
		return
	}

	result, err := s.engine.TrackAssessmentResponse(r.Context(), req.UserID, req.AssessmentType, req.QuestionID, req.Response)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to track assessment response", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tracked":  true,
		"analysis": result,
	})
}

type goalRequest struct {
	UserID      string `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

func (s *Server) handleTrackGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.UserID == "" || req.Title == "" {
		respondWithError(w, http.StatusBadRequest, "user_id and title are required", nil)
		return
	}

	goal, result, err := s.engine.TrackGoalCreation(r.Context(), req.UserID, personality.GoalInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to track goal", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"goal":     goal,
		"analysis": result,
	})
}

type goalCompleteRequest struct {
	UserID string `json:"user_id"`
}

func (s *Server) handleCompleteGoal(w http.ResponseWriter, r *http.Request) {
	goalID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid goal ID", err)
		return
	}

	var req goalCompleteRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.UserID == "" {
		respondWithError(w, http.StatusBadRequest, "user_id is required", nil)
		return
	}

	result, err := s.engine.TrackGoalCompletion(r.Context(), req.UserID, goalID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to complete goal", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"completed": true,
		"analysis":  result,
	})
}

type achievementRequest struct {
	UserID          string `json:"user_id"`
	AchievementType string `json:"achievement_type"`
	Title           string `json:"title"`
	Description     string `json:"description"`
}

func (s *Server) handleTrackAchievement(w http.ResponseWriter, r *http.Request) {
	var req achievementRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.UserID == "" || req.Title == "" {
		respondWithError(w, http.StatusBadRequest, "user_id and title are required", nil)
		return
	}

	if err := s.engine.TrackAchievement(req.UserID, req.AchievementType, req.Title, req.Description); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to track achievement", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"tracked": true})
}

type teamRequest struct {
	UserID     string `json:"user_id"`
	TeamID     string `json:"team_id"`
	ActionType string `json:"action_type"`
	ActionData string `json:"action_data,omitempty"`
}

func (s *Server) handleTrackTeam(w http.ResponseWriter, r *http.Request) {
	var req teamRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.UserID == "" || req.TeamID == "" || req.ActionType == "" {
		respondWithError(w, http.StatusBadRequest, "user_id, team_id and action_type are required", nil)
		return
	}

	if err := s.engine.TrackTeamInteraction(req.UserID, req.TeamID, req.ActionType, req.ActionData); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to track team interaction", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"tracked": true})
}

type opportunityRequest struct {
	UserID          string `json:"user_id"`
	OpportunityType string `json:"opportunity_type"`
	Category        string `json:"category"`
	Title           string `json:"title"`
	ActionType      string `json:"action_type"`
	InteractionData string `json:"interaction_data,omitempty"`
}

func (s *Server) handleTrackOpportunity(w http.ResponseWriter, r *http.Request) {
	var req opportunityRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.UserID == "" || req.ActionType == "" {
		respondWithError(w, http.StatusBadRequest, "user_id and action_type are required", nil)
		return
	}

	result, err := s.engine.TrackOpportunityInteraction(r.Context(), req.UserID, personality.OpportunityInput{
		OpportunityType: req.OpportunityType,
		Category:        req.Category,
		Title:           req.Title,
		ActionType:      req.ActionType,
		InteractionData: req.InteractionData,
	})
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to track opportunity interaction", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tracked":  true,
		"analysis": result, // nil unless the action was "applied"
	})
}

type chatRequest struct {
	UserID   string `json:"user_id"`
	Message  string `json:"message"`
	Response string `json:"response"`
}

func (s *Server) handleTrackChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.UserID == "" || req.Message == "" {
		respondWithError(w, http.StatusBadRequest, "user_id and message are required", nil)
		return
	}

	result, err := s.engine.TrackAiChatInteraction(r.Context(), req.UserID, req.Message, req.Response)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to track chat interaction", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tracked":  true,
		"analysis": result, // nil when the exchange carried no archetype signal
	})
}
