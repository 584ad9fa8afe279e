package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "growthpath-insight/database/models_pkg"
)

func validScoresJSON(primary string) string {
	return `{
		"personalityScores": {
			"Leader": 0.30, "Innovator": 0.10, "Collaborator": 0.10,
			"Perfectionist": 0.10, "Explorer": 0.10, "Mediator": 0.10,
			"Strategist": 0.10, "Anchor": 0.10
		},
		"primaryPersonality": "` + primary + `",
		"confidence": 0.85,
		"reasoning": "evidence-based"
	}`
}

func TestParseArchetypeAnalysisValid(t *testing.T) {
	analysis, err := ParseArchetypeAnalysis(validScoresJSON("Leader"))
	require.NoError(t, err)

	assert.Equal(t, "Leader", analysis.PrimaryPersonality)
	assert.Equal(t, 0.85, analysis.Confidence)
	assert.Equal(t, 0.30, analysis.PersonalityScores["Leader"])
	assert.Len(t, analysis.PersonalityScores, 8)
}

func TestParseArchetypeAnalysisStripsMarkdownFence(t *testing.T) {
	fenced := "```json\n" + validScoresJSON("Strategist") + "\n```"
	analysis, err := ParseArchetypeAnalysis(fenced)
	require.NoError(t, err)
	assert.Equal(t, "Strategist", analysis.PrimaryPersonality)
}

func TestParseArchetypeAnalysisRejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"plain text", "The student is a natural Leader."},
		{"missing scores object", `{"primaryPersonality": "Leader", "confidence": 0.8, "reasoning": "x"}`},
		{"missing archetype key", `{"personalityScores": {"Leader": 1.0}, "primaryPersonality": "Leader", "confidence": 0.8, "reasoning": "x"}`},
		{"negative score", `{"personalityScores": {"Leader": -0.1, "Innovator": 0.2, "Collaborator": 0.15, "Perfectionist": 0.15, "Explorer": 0.15, "Mediator": 0.15, "Strategist": 0.15, "Anchor": 0.15}, "primaryPersonality": "Leader", "confidence": 0.8, "reasoning": "x"}`},
		{"sum above one", `{"personalityScores": {"Leader": 0.5, "Innovator": 0.5, "Collaborator": 0.5, "Perfectionist": 0.1, "Explorer": 0.1, "Mediator": 0.1, "Strategist": 0.1, "Anchor": 0.1}, "primaryPersonality": "Leader", "confidence": 0.8, "reasoning": "x"}`},
		{"sum below one", `{"personalityScores": {"Leader": 0.1, "Innovator": 0.1, "Collaborator": 0.1, "Perfectionist": 0.1, "Explorer": 0.1, "Mediator": 0.1, "Strategist": 0.1, "Anchor": 0.1}, "primaryPersonality": "Leader", "confidence": 0.8, "reasoning": "x"}`},
		{"unknown archetype key", `{"personalityScores": {"Leader": 0.2, "Innovator": 0.1, "Collaborator": 0.1, "Perfectionist": 0.1, "Explorer": 0.1, "Mediator": 0.1, "Strategist": 0.1, "Anchor": 0.1, "Dreamer": 0.1}, "primaryPersonality": "Leader", "confidence": 0.8, "reasoning": "x"}`},
		{"unknown primary", validScoresJSON("Visionary")},
		{"confidence above one", `{"personalityScores": {"Leader": 0.3, "Innovator": 0.1, "Collaborator": 0.1, "Perfectionist": 0.1, "Explorer": 0.1, "Mediator": 0.1, "Strategist": 0.1, "Anchor": 0.1}, "primaryPersonality": "Leader", "confidence": 1.5, "reasoning": "x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseArchetypeAnalysis(tt.raw)
			assert.Error(t, err)
		})
	}
}

func TestParseChatInsightsFiltersIndicators(t *testing.T) {
	raw := `{
		"interests": ["Technology", "Arts"],
		"personalityIndicators": {
			"Strategist": 0.8,
			"Dreamer": 0.9,
			"Leader": 1.5,
			"Mediator": 0
		},
		"confidence": 0.7
	}`

	insights, err := ParseChatInsights(raw)
	require.NoError(t, err)

	assert.Equal(t, []string{"Technology", "Arts"}, insights.Interests)
	// Unknown archetypes and out-of-range values are dropped, not fatal
	assert.Equal(t, map[string]float64{"Strategist": 0.8}, insights.PersonalityIndicators)
}

func TestParseChatInsightsRejectsMalformed(t *testing.T) {
	_, err := ParseChatInsights("not json at all")
	assert.Error(t, err)
}

func TestFormatPersonalityPrompt(t *testing.T) {
	current := "Explorer"
	snap := &models.BehaviorSnapshot{
		UserID:             "u1",
		CurrentPersonality: &current,
		Interests:          []string{"Technology"},
		Assessments: []models.AssessmentResponse{
			{AssessmentType: "personality", QuestionID: "q1", Response: "I like leading group projects"},
		},
		Goals: []models.Goal{
			{Title: "Learn Go", Category: "Technology", Completed: true},
			{Title: "Read more", Category: "Academic"},
		},
		TeamInteractions: []models.TeamInteraction{
			{TeamID: "t1", ActionType: "message"},
		},
	}

	prompt := FormatPersonalityPrompt(snap)

	assert.Contains(t, prompt, "Current archetype: Explorer")
	assert.Contains(t, prompt, "Current interests: Technology")
	assert.Contains(t, prompt, "I like leading group projects")
	assert.Contains(t, prompt, "2 total, 1 completed (50% completion)")
	assert.Contains(t, prompt, "category Technology: 1")
	assert.Contains(t, prompt, "Team interactions: 1")
}

func TestFormatPersonalityPromptTruncatesAnswers(t *testing.T) {
	snap := &models.BehaviorSnapshot{UserID: "u1"}
	long := strings.Repeat("x", maxAnswerChars+50)
	for i := 0; i < maxRawAnswers+5; i++ {
		snap.Assessments = append(snap.Assessments, models.AssessmentResponse{
			AssessmentType: "personality",
			QuestionID:     "q",
			Response:       long,
		})
	}

	prompt := FormatPersonalityPrompt(snap)

	assert.Contains(t, prompt, "(5 more answers omitted)")
	assert.NotContains(t, prompt, long, "raw answers are truncated")
	assert.Contains(t, prompt, "Current archetype: none (first analysis)")
}
