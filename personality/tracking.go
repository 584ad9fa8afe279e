package personality

import (
	"context"

	"growthpath-insight/database"
)

// TrackAssessmentResponse records one assessment answer, extracts interests
// from its text, and re-analyzes the user's personality.
func (e *Engine) TrackAssessmentResponse(ctx context.Context, userID, assessmentType, questionID, responseText string) (*Result, error) {
	resp := &database.AssessmentResponse{
		UserID:         userID,
		AssessmentType: assessmentType,
		QuestionID:     questionID,
		Response:       responseText,
	}
	if err := e.store.CreateAssessmentResponse(resp); err != nil {
		return nil, err
	}

	if _, err := e.updateInterests(userID, interestsFromText(responseText), database.ReasonAssessment); err != nil {
		return nil, err
	}

	return e.AnalyzeUserPersonality(ctx, userID)
}

// GoalInput carries the fields of a new goal
type GoalInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// TrackGoalCreation records a new goal, extracts interests from its
// category and description, and re-analyzes.
func (e *Engine) TrackGoalCreation(ctx context.Context, userID string, input GoalInput) (*database.Goal, *Result, error) {
	goal := &database.Goal{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
	}
	if err := e.store.CreateGoal(goal); err != nil {
		return nil, nil, err
	}

	// The goal's category maps directly to an interest; the description is
	// keyword-scanned on top
	candidates := interestsFromText(input.Title + " " + input.Description)
	if mapped, ok := goalCategoryInterests[input.Category]; ok {
		candidates = append(candidates, mapped)
	} else if tag, ok := canonicalInterest(input.Category); ok {
		candidates = append(candidates, tag)
	}
	if _, err := e.updateInterests(userID, candidates, database.ReasonGoalCreation); err != nil {
		return nil, nil, err
	}

	result, err := e.AnalyzeUserPersonality(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return goal, result, nil
}

// TrackGoalCompletion marks a goal completed and re-analyzes. No interest
// extraction happens on completion.
func (e *Engine) TrackGoalCompletion(ctx context.Context, userID string, goalID int64) (*Result, error) {
	if err := e.store.CompleteGoal(userID, goalID); err != nil {
		return nil, err
	}
	return e.AnalyzeUserPersonality(ctx, userID)
}

// TrackAchievement records an achievement. It does not itself trigger
// re-analysis; callers decide.
func (e *Engine) TrackAchievement(userID, achievementType, title, description string) error {
	return e.store.CreateAchievement(&database.Achievement{
		UserID:          userID,
		AchievementType: achievementType,
		Title:           title,
		Description:     description,
	})
}

// TrackTeamInteraction records a team action. Record only.
func (e *Engine) TrackTeamInteraction(userID, teamID, actionType, actionData string) error {
	return e.store.CreateTeamInteraction(&database.TeamInteraction{
		UserID:     userID,
		TeamID:     teamID,
		ActionType: actionType,
		ActionData: actionData,
	})
}

// OpportunityInput carries the fields of an opportunity interaction
type OpportunityInput struct {
	OpportunityType string `json:"opportunity_type"`
	Category        string `json:"category"`
	Title           string `json:"title"`
	ActionType      string `json:"action_type"`
	InteractionData string `json:"interaction_data,omitempty"`
}

// TrackOpportunityInteraction records the action. An "applied" action is a
// strong interest signal and additionally triggers re-analysis; viewed and
// saved actions are recorded only. The Result is nil when no analysis ran.
func (e *Engine) TrackOpportunityInteraction(ctx context.Context, userID string, input OpportunityInput) (*Result, error) {
	oi := &database.OpportunityInteraction{
		UserID:          userID,
		OpportunityType: input.OpportunityType,
		Category:        input.Category,
		Title:           input.Title,
		ActionType:      input.ActionType,
		InteractionData: input.InteractionData,
	}
	if err := e.store.CreateOpportunityInteraction(oi); err != nil {
		return nil, err
	}

	if input.ActionType != database.OpportunityActionApplied {
		return nil, nil
	}

	if _, err := e.updateInterests(userID, []string{input.Category}, database.ReasonOpportunityApplication); err != nil {
		return nil, err
	}

	return e.AnalyzeUserPersonality(ctx, userID)
}

// TrackAiChatInteraction records one assistant exchange, extracts interest
// tags and archetype indicators through the model (errors degrade to an
// empty extraction), and re-analyzes only when at least one archetype
// indicator came back. The Result is nil when no analysis ran.
func (e *Engine) TrackAiChatInteraction(ctx context.Context, userID, message, response string) (*Result, error) {
	ci := &database.ChatInteraction{
		UserID:   userID,
		Message:  message,
		Response: response,
	}
	if err := e.store.CreateChatInteraction(ci); err != nil {
		return nil, err
	}

	insights := e.extractChatInsights(ctx, message, response)

	if _, err := e.updateInterests(userID, insights.Interests, database.ReasonAiChat); err != nil {
		return nil, err
	}

	if len(insights.PersonalityIndicators) == 0 {
		return nil, nil
	}

	return e.AnalyzeUserPersonality(ctx, userID)
}

// LatestAnalyses exposes the analysis audit trail for a user
func (e *Engine) LatestAnalyses(userID string, limit int) ([]database.PersonalityAnalysis, error) {
	return e.store.LatestAnalyses(userID, limit)
}
