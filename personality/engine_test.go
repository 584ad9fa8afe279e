package personality

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"growthpath-insight/config"
	"growthpath-insight/database"
)

// fakeStore is an in-memory Store implementation for engine tests
type fakeStore struct {
	users         map[string]*database.User
	assessments   []database.AssessmentResponse
	goals         []database.Goal
	achievements  []database.Achievement
	teams         []database.TeamInteraction
	opportunities []database.OpportunityInteraction
	chats         []database.ChatInteraction
	analyses      []database.PersonalityAnalysis
	evolutions    []database.InterestEvolution
	percentiles   map[string]*database.PersonalityPercentile
	nextGoalID    int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:       make(map[string]*database.User),
		percentiles: make(map[string]*database.PersonalityPercentile),
	}
}

func (f *fakeStore) addUser(id string) *database.User {
	u := &database.User{
		ID:        id,
		Name:      "Student " + id,
		Email:     id + "@example.com",
		Interests: "[]",
	}
	f.users[id] = u
	return u
}

// setStoredScores marks a user as previously analyzed with the given
// archetype scores, making them part of percentile populations
func (f *fakeStore) setStoredScores(id string, scores map[string]float64) {
	raw, _ := json.Marshal(scores)
	s := string(raw)
	f.users[id].PersonalityScores = &s
}

func (f *fakeStore) GetUser(userID string) (*database.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (f *fakeStore) UpdateUserPersonality(userID, personalityType, scoresJSON string) error {
	u, ok := f.users[userID]
	if !ok {
		return fmt.Errorf("user %s not found", userID)
	}
	u.PersonalityType = &personalityType
	u.PersonalityScores = &scoresJSON
	return nil
}

func (f *fakeStore) UpdateUserInterests(userID, interestsJSON string) error {
	u, ok := f.users[userID]
	if !ok {
		return fmt.Errorf("user %s not found", userID)
	}
	u.Interests = interestsJSON
	return nil
}

func (f *fakeStore) CreateAssessmentResponse(resp *database.AssessmentResponse) error {
	resp.CreatedAt = time.Now()
	f.assessments = append(f.assessments, *resp)
	return nil
}

func (f *fakeStore) CreateGoal(goal *database.Goal) error {
	f.nextGoalID++
	goal.ID = f.nextGoalID
	goal.CreatedAt = time.Now()
	f.goals = append(f.goals, *goal)
	return nil
}

func (f *fakeStore) CompleteGoal(userID string, goalID int64) error {
	for i := range f.goals {
		if f.goals[i].ID == goalID && f.goals[i].UserID == userID {
			now := time.Now()
			f.goals[i].Completed = true
			f.goals[i].CompletedAt = &now
			return nil
		}
	}
	return fmt.Errorf("goal %d not found for user %s", goalID, userID)
}

func (f *fakeStore) CreateAchievement(ach *database.Achievement) error {
	ach.CreatedAt = time.Now()
	f.achievements = append(f.achievements, *ach)
	return nil
}

func (f *fakeStore) CreateTeamInteraction(ti *database.TeamInteraction) error {
	ti.CreatedAt = time.Now()
	f.teams = append(f.teams, *ti)
	return nil
}

func (f *fakeStore) CreateOpportunityInteraction(oi *database.OpportunityInteraction) error {
	oi.CreatedAt = time.Now()
	f.opportunities = append(f.opportunities, *oi)
	return nil
}

func (f *fakeStore) CreateChatInteraction(ci *database.ChatInteraction) error {
	ci.CreatedAt = time.Now()
	f.chats = append(f.chats, *ci)
	return nil
}

func (f *fakeStore) AssessmentResponsesSince(userID string, since time.Time) ([]database.AssessmentResponse, error) {
	var out []database.AssessmentResponse
	for _, r := range f.assessments {
		if r.UserID == userID && !r.CreatedAt.Before(since) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) GoalsByUser(userID string) ([]database.Goal, error) {
	var out []database.Goal
	for _, g := range f.goals {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeStore) AchievementsSince(userID string, since time.Time) ([]database.Achievement, error) {
	var out []database.Achievement
	for _, a := range f.achievements {
		if a.UserID == userID && !a.CreatedAt.Before(since) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeStore) TeamInteractionsSince(userID string, since time.Time) ([]database.TeamInteraction, error) {
	var out []database.TeamInteraction
	for _, ti := range f.teams {
		if ti.UserID == userID && !ti.CreatedAt.Before(since) {
			out = append(out, ti)
		}
	}
	return out, nil
}

func (f *fakeStore) OpportunityInteractionsSince(userID string, since time.Time) ([]database.OpportunityInteraction, error) {
	var out []database.OpportunityInteraction
	for _, oi := range f.opportunities {
		if oi.UserID == userID && !oi.CreatedAt.Before(since) {
			out = append(out, oi)
		}
	}
	return out, nil
}

func (f *fakeStore) ChatInteractionsSince(userID string, since time.Time) ([]database.ChatInteraction, error) {
	var out []database.ChatInteraction
	for _, ci := range f.chats {
		if ci.UserID == userID && !ci.CreatedAt.Before(since) {
			out = append(out, ci)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateAnalysis(rec *database.PersonalityAnalysis) error {
	rec.CreatedAt = time.Now()
	f.analyses = append(f.analyses, *rec)
	return nil
}

func (f *fakeStore) LatestAnalyses(userID string, limit int) ([]database.PersonalityAnalysis, error) {
	var out []database.PersonalityAnalysis
	for i := len(f.analyses) - 1; i >= 0 && len(out) < limit; i-- {
		if f.analyses[i].UserID == userID {
			out = append(out, f.analyses[i])
		}
	}
	return out, nil
}

func (f *fakeStore) CreateInterestEvolution(rec *database.InterestEvolution) error {
	rec.CreatedAt = time.Now()
	f.evolutions = append(f.evolutions, *rec)
	return nil
}

func (f *fakeStore) PercentileRecord(userID, archetype string) (*database.PersonalityPercentile, error) {
	rec, ok := f.percentiles[userID+"|"+archetype]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeStore) SavePercentile(rec *database.PersonalityPercentile) error {
	cp := *rec
	f.percentiles[rec.UserID+"|"+rec.Archetype] = &cp
	return nil
}

func (f *fakeStore) PercentileRecords(userID string) ([]database.PersonalityPercentile, error) {
	var out []database.PersonalityPercentile
	for _, rec := range f.percentiles {
		if rec.UserID == userID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (f *fakeStore) ArchetypeScorePopulation(archetype, excludeUserID string) ([]float64, error) {
	var scores []float64
	for id, u := range f.users {
		if id == excludeUserID || u.PersonalityScores == nil {
			continue
		}
		var parsed map[string]float64
		if err := json.Unmarshal([]byte(*u.PersonalityScores), &parsed); err != nil {
			continue
		}
		scores = append(scores, parsed[archetype])
	}
	return scores, nil
}

func (f *fakeStore) UsersWithScores() ([]database.UserScores, error) {
	var out []database.UserScores
	for id, u := range f.users {
		if u.PersonalityScores != nil {
			out = append(out, database.UserScores{UserID: id, Scores: *u.PersonalityScores})
		}
	}
	return out, nil
}

// scriptedCompleter replays canned replies in order; once the script is
// exhausted it returns err (or the last reply when err is nil)
type scriptedCompleter struct {
	replies []string
	err     error
	calls   int
}

func (c *scriptedCompleter) CompleteJSON(ctx context.Context, system, prompt string) (string, error) {
	c.calls++
	if len(c.replies) == 0 {
		return "", c.err
	}
	reply := c.replies[0]
	if len(c.replies) > 1 {
		c.replies = c.replies[1:]
	}
	return reply, nil
}

func testConfig() config.EngineConfig {
	return config.EngineConfig{
		BehaviorWindowDays:     30,
		PercentileHistoryLimit: 30,
		FallbackConfidence:     0.6,
		InterestConfidence:     0.7,
		FallbackSeed:           42,
	}
}

func newTestEngine(store Store, completer Completer) *Engine {
	return NewEngine(store, completer, nil, nil, testConfig())
}
