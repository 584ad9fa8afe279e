package personality

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"growthpath-insight/database"
)

func userInterests(t *testing.T, store *fakeStore, userID string) []string {
	t.Helper()
	var interests []string
	require.NoError(t, json.Unmarshal([]byte(store.users[userID].Interests), &interests))
	return interests
}

func TestGoalCreationExtractsCategoryInterest(t *testing.T) {
	store := newFakeStore()
	store.addUser("u1")
	engine := newTestEngine(store, nil)

	goal, result, err := engine.TrackGoalCreation(context.Background(), "u1", GoalInput{
		Title:       "Build a personal website",
		Description: "I want to learn to code",
		Category:    "Technology",
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, int64(1), goal.ID)

	assert.Equal(t, []string{database.InterestTechnology}, userInterests(t, store, "u1"))

	require.Len(t, store.evolutions, 1)
	assert.Equal(t, database.ReasonGoalCreation, store.evolutions[0].Reason)
	assert.Equal(t, 0.7, store.evolutions[0].Confidence)
	assert.Equal(t, "[]", store.evolutions[0].PreviousInterests)

	require.Len(t, store.analyses, 1)
}

func TestInterestsGrowMonotonically(t *testing.T) {
	store := newFakeStore()
	store.addUser("u1")
	engine := newTestEngine(store, nil)

	_, _, err := engine.TrackGoalCreation(context.Background(), "u1", GoalInput{
		Title: "Join the robotics club", Category: "Technology",
	})
	require.NoError(t, err)

	_, err = engine.TrackAssessmentResponse(context.Background(), "u1",
		"interests", "q1", "I love volunteering at the community garden")
	require.NoError(t, err)

	interests := userInterests(t, store, "u1")
	assert.Contains(t, interests, database.InterestTechnology, "earlier tags survive later updates")
	assert.Contains(t, interests, database.InterestCommunity)
}

func TestInterestUpdateIsIdempotent(t *testing.T) {
	store := newFakeStore()
	store.addUser("u1")
	engine := newTestEngine(store, nil)

	_, err := engine.TrackAssessmentResponse(context.Background(), "u1",
		"interests", "q1", "I spend my weekends coding")
	require.NoError(t, err)
	require.Len(t, store.evolutions, 1)

	// Same evidence again: the tag set cannot grow, so no evolution record
	_, err = engine.TrackAssessmentResponse(context.Background(), "u1",
		"interests", "q1", "I spend my weekends coding")
	require.NoError(t, err)
	assert.Len(t, store.evolutions, 1)
	assert.Equal(t, []string{database.InterestTechnology}, userInterests(t, store, "u1"))
}

func TestCanonicalInterestFiltering(t *testing.T) {
	tests := []struct {
		tag      string
		expected string
		ok       bool
	}{
		{"Technology", database.InterestTechnology, true},
		{"technology", database.InterestTechnology, true},
		{" social sciences ", database.InterestSocialSciences, true},
		{"Quantum Basket Weaving", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := canonicalInterest(tt.tag)
		assert.Equal(t, tt.ok, ok, "tag %q", tt.tag)
		assert.Equal(t, tt.expected, got, "tag %q", tt.tag)
	}
}

func TestOpportunityInteractionOnlyAppliedTriggersAnalysis(t *testing.T) {
	store := newFakeStore()
	store.addUser("u1")
	engine := newTestEngine(store, nil)

	result, err := engine.TrackOpportunityInteraction(context.Background(), "u1", OpportunityInput{
		OpportunityType: "internship",
		Category:        database.InterestBusiness,
		Title:           "Summer analyst program",
		ActionType:      database.OpportunityActionViewed,
	})
	require.NoError(t, err)
	assert.Nil(t, result, "viewed actions are recorded only")
	assert.Empty(t, store.analyses)
	assert.Empty(t, store.evolutions)

	result, err = engine.TrackOpportunityInteraction(context.Background(), "u1", OpportunityInput{
		OpportunityType: "internship",
		Category:        database.InterestBusiness,
		Title:           "Summer analyst program",
		ActionType:      database.OpportunityActionApplied,
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Len(t, store.opportunities, 2)
	assert.Len(t, store.analyses, 1)
	assert.Equal(t, []string{database.InterestBusiness}, userInterests(t, store, "u1"))
}

func TestChatTrackingAnalyzesOnlyWithIndicators(t *testing.T) {
	noSignal := `{"interests": [], "personalityIndicators": {}, "confidence": 0.0}`
	withSignal := `{"interests": ["Technology"], "personalityIndicators": {"Strategist": 0.8}, "confidence": 0.7}`

	t.Run("no archetype signal records only", func(t *testing.T) {
		store := newFakeStore()
		store.addUser("u1")
		engine := newTestEngine(store, &scriptedCompleter{replies: []string{noSignal}})

		result, err := engine.TrackAiChatInteraction(context.Background(), "u1",
			"what homework is due tomorrow", "your physics worksheet")
		require.NoError(t, err)
		assert.Nil(t, result)
		assert.Len(t, store.chats, 1)
		assert.Empty(t, store.analyses)
	})

	t.Run("archetype signal triggers analysis", func(t *testing.T) {
		store := newFakeStore()
		store.addUser("u1")
		engine := newTestEngine(store, &scriptedCompleter{replies: []string{withSignal, validModelReply}})

		result, err := engine.TrackAiChatInteraction(context.Background(), "u1",
			"help me plan my study schedule for the coding competition", "sure, here is a plan")
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Len(t, store.analyses, 1)
		assert.Equal(t, []string{database.InterestTechnology}, userInterests(t, store, "u1"))
	})

	t.Run("extraction failure degrades to record only", func(t *testing.T) {
		store := newFakeStore()
		store.addUser("u1")
		engine := newTestEngine(store, &scriptedCompleter{replies: []string{"garbage reply"}})

		result, err := engine.TrackAiChatInteraction(context.Background(), "u1",
			"hello", "hi")
		require.NoError(t, err)
		assert.Nil(t, result)
		assert.Len(t, store.chats, 1)
		assert.Empty(t, store.analyses)
	})
}
