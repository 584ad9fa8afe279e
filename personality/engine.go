// Package personality implements the archetype inference engine: behavior
// aggregation, LLM-backed analysis with a deterministic fallback,
// population-relative percentile tracking, and interest extraction from
// behavioral evidence.
package personality

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"growthpath-insight/cache"
	"growthpath-insight/config"
	"growthpath-insight/database"
)

// Store is the persistence surface the engine needs. database.Store is the
// production implementation; tests substitute an in-memory fake.
type Store interface {
	GetUser(userID string) (*database.User, error)
	UpdateUserPersonality(userID, personalityType, scoresJSON string) error
	UpdateUserInterests(userID, interestsJSON string) error

	CreateAssessmentResponse(resp *database.AssessmentResponse) error
	CreateGoal(goal *database.Goal) error
	CompleteGoal(userID string, goalID int64) error
	CreateAchievement(ach *database.Achievement) error
	CreateTeamInteraction(ti *database.TeamInteraction) error
	CreateOpportunityInteraction(oi *database.OpportunityInteraction) error
	CreateChatInteraction(ci *database.ChatInteraction) error

	AssessmentResponsesSince(userID string, since time.Time) ([]database.AssessmentResponse, error)
	GoalsByUser(userID string) ([]database.Goal, error)
	AchievementsSince(userID string, since time.Time) ([]database.Achievement, error)
	TeamInteractionsSince(userID string, since time.Time) ([]database.TeamInteraction, error)
	OpportunityInteractionsSince(userID string, since time.Time) ([]database.OpportunityInteraction, error)
	ChatInteractionsSince(userID string, since time.Time) ([]database.ChatInteraction, error)

	CreateAnalysis(rec *database.PersonalityAnalysis) error
	LatestAnalyses(userID string, limit int) ([]database.PersonalityAnalysis, error)
	CreateInterestEvolution(rec *database.InterestEvolution) error
	PercentileRecord(userID, archetype string) (*database.PersonalityPercentile, error)
	SavePercentile(rec *database.PersonalityPercentile) error
	PercentileRecords(userID string) ([]database.PersonalityPercentile, error)
	ArchetypeScorePopulation(archetype, excludeUserID string) ([]float64, error)
	UsersWithScores() ([]database.UserScores, error)
}

// Completer is the text-generation dependency. llm.Client is the production
// implementation; tests substitute a scripted double.
type Completer interface {
	CompleteJSON(ctx context.Context, system, prompt string) (string, error)
}

// Broadcaster pushes engine events to connected clients
type Broadcaster interface {
	Broadcast(event string, payload interface{})
}

// Result is the outcome of one analysis run
type Result struct {
	Primary    string  `json:"primary"`
	Scores     Scores  `json:"scores"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
	Fallback   bool    `json:"fallback"`
}

// Engine runs the full inference pipeline. Each analysis is a sequential
// chain of store reads, at most one LLM call, then store writes; the engine
// holds no cross-request state beyond the seeded PRNG.
type Engine struct {
	store  Store
	llm    Completer
	cache  *cache.InsightCache
	events Broadcaster
	cfg    config.EngineConfig

	mu  sync.Mutex // guards rng
	rng *rand.Rand

	now func() time.Time
}

// NewEngine creates the engine. llm, insightCache and events may be nil:
// a nil llm routes every analysis to the deterministic fallback, nil cache
// disables memoization, nil events disables broadcasting.
func NewEngine(store Store, llm Completer, insightCache *cache.InsightCache, events Broadcaster, cfg config.EngineConfig) *Engine {
	seed := cfg.FallbackSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Engine{
		store:  store,
		llm:    llm,
		cache:  insightCache,
		events: events,
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(seed)),
		now:    time.Now,
	}
}

// windowStart returns the cutoff of the trailing behavioral window
func (e *Engine) windowStart() time.Time {
	return e.now().AddDate(0, 0, -e.cfg.BehaviorWindowDays)
}

// buildSnapshot assembles the per-run behavior aggregate. A missing user
// yields an empty snapshot, which flows into the fallback path with
// zero behavioral data rather than raising a distinct error.
func (e *Engine) buildSnapshot(userID string) (*database.BehaviorSnapshot, error) {
	snap := &database.BehaviorSnapshot{UserID: userID}

	user, err := e.store.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return snap, nil
	}

	snap.CurrentPersonality = user.PersonalityType
	snap.Interests = parseInterests(user.Interests)

	since := e.windowStart()
	if snap.Assessments, err = e.store.AssessmentResponsesSince(userID, since); err != nil {
		return nil, err
	}
	if snap.Goals, err = e.store.GoalsByUser(userID); err != nil {
		return nil, err
	}
	if snap.Achievements, err = e.store.AchievementsSince(userID, since); err != nil {
		return nil, err
	}
	if snap.TeamInteractions, err = e.store.TeamInteractionsSince(userID, since); err != nil {
		return nil, err
	}
	if snap.OpportunityInteractions, err = e.store.OpportunityInteractionsSince(userID, since); err != nil {
		return nil, err
	}
	if snap.ChatInteractions, err = e.store.ChatInteractionsSince(userID, since); err != nil {
		return nil, err
	}

	return snap, nil
}

// AnalyzeUserPersonality runs the full pipeline for one user: aggregate,
// analyze (LLM or fallback), compute percentiles against the population
// snapshot, then persist the audit record, percentile rows and denormalized
// user fields. Analysis itself never fails; persistence errors propagate.
func (e *Engine) AnalyzeUserPersonality(ctx context.Context, userID string) (*Result, error) {
	snap, err := e.buildSnapshot(userID)
	if err != nil {
		return nil, fmt.Errorf("behavior aggregation failed: %w", err)
	}

	result := e.analyzeSnapshot(ctx, snap)

	if err := e.persistAnalysis(userID, snap, result); err != nil {
		return nil, err
	}

	if e.events != nil {
		e.events.Broadcast("personality_analysis", map[string]interface{}{
			"user_id":    userID,
			"primary":    result.Primary,
			"confidence": result.Confidence,
			"fallback":   result.Fallback,
		})
	}

	return result, nil
}

// persistAnalysis writes the side effects of one analysis run. The
// percentile population is read before the user's own row is updated so a
// user never influences their own percentile within the same run.
func (e *Engine) persistAnalysis(userID string, snap *database.BehaviorSnapshot, result *Result) error {
	percentiles, err := e.computePercentiles(userID, result.Scores)
	if err != nil {
		return fmt.Errorf("percentile computation failed: %w", err)
	}

	scoresJSON, err := result.Scores.MarshalJSONString()
	if err != nil {
		return err
	}
	percentilesJSON, err := json.Marshal(percentiles)
	if err != nil {
		return fmt.Errorf("failed to marshal percentiles: %w", err)
	}

	rec := &database.PersonalityAnalysis{
		ID:           uuid.New().String(),
		UserID:       userID,
		Scores:       scoresJSON,
		Confidence:   result.Confidence,
		PreviousType: snap.CurrentPersonality,
		NewType:      result.Primary,
		Reasoning:    result.Reasoning,
		Percentiles:  string(percentilesJSON),
	}
	if err := e.store.CreateAnalysis(rec); err != nil {
		return err
	}

	if err := e.applyPercentiles(userID, result.Scores, percentiles); err != nil {
		return err
	}

	// Denormalized user fields go last, after the population snapshot was read
	if err := e.store.UpdateUserPersonality(userID, result.Primary, scoresJSON); err != nil {
		return err
	}

	return nil
}

// parseInterests deserializes the user's interest tag list, tolerating an
// empty or malformed column
func parseInterests(raw string) []string {
	if raw == "" {
		return nil
	}
	var interests []string
	if err := json.Unmarshal([]byte(raw), &interests); err != nil {
		log.Printf("⚠️ Malformed interests column, treating as empty: %v", err)
		return nil
	}
	return interests
}
