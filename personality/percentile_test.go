package personality

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"growthpath-insight/database"
)

func TestPercentileOf(t *testing.T) {
	tests := []struct {
		name       string
		score      float64
		population []float64
		expected   int
	}{
		{"empty population ranks at midpoint", 0.9, nil, 50},
		{"above everyone", 0.9, []float64{0.1, 0.2, 0.3}, 100},
		{"below everyone", 0.05, []float64{0.1, 0.2, 0.3}, 0},
		{"middle of three", 0.5, []float64{0.1, 0.5, 0.9}, 33},
		{"ties do not count as below", 0.5, []float64{0.5, 0.5}, 0},
		{"half below", 0.5, []float64{0.1, 0.9}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := percentileOf(tt.score, tt.population)
			assert.Equal(t, tt.expected, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		})
	}
}

func TestAnalysisExcludesSubjectFromPopulation(t *testing.T) {
	store := newFakeStore()
	store.addUser("u1")
	store.addUser("u2")
	store.setStoredScores("u2", map[string]float64{database.ArchetypeLeader: 0.2})
	engine := newTestEngine(store, nil)

	_, err := engine.AnalyzeUserPersonality(context.Background(), "u1")
	require.NoError(t, err)

	// u1's population for every archetype is just u2, so every percentile is
	// 0 or 100, never the empty-population midpoint
	percentiles, err := engine.GetUserPercentiles("u1")
	require.NoError(t, err)
	require.Len(t, percentiles, len(database.Archetypes))
	for archetype, info := range percentiles {
		assert.Contains(t, []int{0, 100}, info.Percentile, "archetype %s", archetype)
	}
}

func TestScoreHistoryTruncation(t *testing.T) {
	store := newFakeStore()
	store.addUser("u1")
	engine := newTestEngine(store, nil)

	base := time.Now()
	run := 0
	engine.now = func() time.Time {
		return base.Add(time.Duration(run) * time.Minute)
	}

	for run = 0; run < 35; run++ {
		_, err := engine.AnalyzeUserPersonality(context.Background(), "u1")
		require.NoError(t, err)
	}

	rec, err := store.PercentileRecord("u1", database.ArchetypeLeader)
	require.NoError(t, err)
	require.NotNil(t, rec)

	var history []database.ScorePoint
	require.NoError(t, json.Unmarshal([]byte(rec.ScoreHistory), &history))
	require.Len(t, history, 30, "history is capped at 30 points")

	// The 5 oldest points were dropped: the retained window is runs 5..34
	assert.Equal(t, base.Add(5*time.Minute).Unix(), history[0].RecordedAt.Unix())
	assert.Equal(t, base.Add(34*time.Minute).Unix(), history[29].RecordedAt.Unix())
	for i := 1; i < len(history); i++ {
		assert.True(t, history[i].RecordedAt.After(history[i-1].RecordedAt))
	}
}

func TestRecalculateAllPercentiles(t *testing.T) {
	store := newFakeStore()
	store.addUser("a")
	store.addUser("b")
	store.addUser("c")
	store.setStoredScores("a", map[string]float64{database.ArchetypeLeader: 0.1})
	store.setStoredScores("b", map[string]float64{database.ArchetypeLeader: 0.5})
	store.setStoredScores("c", map[string]float64{database.ArchetypeLeader: 0.9})
	engine := newTestEngine(store, nil)

	require.NoError(t, engine.RecalculateAllPercentiles())

	expected := map[string]int{"a": 0, "b": 50, "c": 100}
	for userID, want := range expected {
		rec, err := store.PercentileRecord(userID, database.ArchetypeLeader)
		require.NoError(t, err)
		require.NotNil(t, rec, "user %s has no Leader percentile row", userID)
		assert.Equal(t, want, rec.Percentile, "user %s", userID)
	}
}

func TestRecalculateSkipsUnreadableScores(t *testing.T) {
	store := newFakeStore()
	store.addUser("good")
	store.addUser("bad")
	store.setStoredScores("good", map[string]float64{database.ArchetypeLeader: 0.4})
	corrupt := "{not json"
	store.users["bad"].PersonalityScores = &corrupt
	engine := newTestEngine(store, nil)

	require.NoError(t, engine.RecalculateAllPercentiles())

	rec, err := store.PercentileRecord("good", database.ArchetypeLeader)
	require.NoError(t, err)
	require.NotNil(t, rec)

	badRec, err := store.PercentileRecord("bad", database.ArchetypeLeader)
	require.NoError(t, err)
	assert.Nil(t, badRec, "users with unreadable scores are skipped")
}
