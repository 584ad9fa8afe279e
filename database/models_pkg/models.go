package models

import "time"

// User represents a student profile on the platform.
// The personality engine is the sole writer of the archetype fields;
// interest tags may also be written by onboarding flows.
//
// Key Fields:
//   - PersonalityType: current primary archetype label (nil until first analysis)
//   - PersonalityScores: current archetype score distribution, stored as JSONB
//     ({"Leader":0.21,...}); nil means the user has never been analyzed and the
//     row is excluded from percentile comparison populations
//   - Interests: interest tag list stored as a JSON array; grows monotonically
//     through behavioral evidence, never shrinks
type User struct {
	ID                string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name              string    `gorm:"size:100;not null" json:"name"`
	Email             string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PersonalityType   *string   `gorm:"type:text" json:"personality_type,omitempty"`
	PersonalityScores *string   `gorm:"type:jsonb" json:"personality_scores,omitempty"`
	Interests         string    `gorm:"type:jsonb;default:'[]'" json:"interests"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// AssessmentResponse is a single free-text answer to a self-assessment question
type AssessmentResponse struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         string    `gorm:"type:uuid;index;not null" json:"user_id"`
	AssessmentType string    `gorm:"type:text;not null" json:"assessment_type"` // personality, skills, interests
	QuestionID     string    `gorm:"type:text;not null" json:"question_id"`
	Response       string    `gorm:"type:text;not null" json:"response"`
	CreatedAt      time.Time `gorm:"index;autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for AssessmentResponse
func (AssessmentResponse) TableName() string {
	return "assessment_responses"
}

// Goal is a user-created development goal. Unlike the windowed event tables,
// the full goal history feeds every analysis run.
type Goal struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      string     `gorm:"type:uuid;index;not null" json:"user_id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Category    string     `gorm:"type:text;index" json:"category"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for Goal
func (Goal) TableName() string {
	return "goals"
}

// Achievement records an earned badge or milestone
type Achievement struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          string    `gorm:"type:uuid;index;not null" json:"user_id"`
	AchievementType string    `gorm:"type:text;not null" json:"achievement_type"`
	Title           string    `gorm:"size:200;not null" json:"title"`
	Description     string    `gorm:"type:text" json:"description"`
	CreatedAt       time.Time `gorm:"index;autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for Achievement
func (Achievement) TableName() string {
	return "achievements"
}

// TeamInteraction records an action inside a collaboration team
type TeamInteraction struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     string    `gorm:"type:uuid;index;not null" json:"user_id"`
	TeamID     string    `gorm:"type:text;not null" json:"team_id"`
	ActionType string    `gorm:"type:text;not null" json:"action_type"` // joined, message, task_moved, ...
	ActionData string    `gorm:"type:jsonb" json:"action_data,omitempty"`
	CreatedAt  time.Time `gorm:"index;autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for TeamInteraction
func (TeamInteraction) TableName() string {
	return "team_interactions"
}

// OpportunityInteraction records a user acting on an opportunity listing.
// ActionType "applied" is the strong signal that triggers interest
// extraction and re-analysis; viewed/saved are recorded only.
type OpportunityInteraction struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          string    `gorm:"type:uuid;index;not null" json:"user_id"`
	OpportunityType string    `gorm:"type:text;not null" json:"opportunity_type"` // internship, competition, course
	Category        string    `gorm:"type:text;not null" json:"category"`
	Title           string    `gorm:"size:200;not null" json:"title"`
	ActionType      string    `gorm:"type:text;index;not null" json:"action_type"` // viewed, saved, applied
	InteractionData string    `gorm:"type:jsonb" json:"interaction_data,omitempty"`
	CreatedAt       time.Time `gorm:"index;autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for OpportunityInteraction
func (OpportunityInteraction) TableName() string {
	return "opportunity_interactions"
}

// ChatInteraction stores one message/response pair from the AI assistant
type ChatInteraction struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"type:uuid;index;not null" json:"user_id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Response  string    `gorm:"type:text" json:"response"`
	CreatedAt time.Time `gorm:"index;autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for ChatInteraction
func (ChatInteraction) TableName() string {
	return "chat_interactions"
}

// PersonalityAnalysis is the append-only audit record of one analysis run.
// Rows are never updated or deleted.
//
// Key Fields:
//   - Scores: the full 8-archetype distribution produced by the run (JSONB)
//   - Confidence: 0.6 fixed on the fallback path, model-reported otherwise
//   - PreviousType/NewType: archetype label transition for this run
//   - Percentiles: per-archetype percentile snapshot at analysis time (JSONB)
type PersonalityAnalysis struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       string    `gorm:"type:uuid;index;not null" json:"user_id"`
	Scores       string    `gorm:"type:jsonb;not null" json:"scores"`
	Confidence   float64   `gorm:"type:decimal(5,4);not null" json:"confidence"`
	PreviousType *string   `gorm:"type:text" json:"previous_type,omitempty"`
	NewType      string    `gorm:"type:text;not null" json:"new_type"`
	Reasoning    string    `gorm:"type:text" json:"reasoning"`
	Percentiles  string    `gorm:"type:jsonb" json:"percentiles"`
	CreatedAt    time.Time `gorm:"index;autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for PersonalityAnalysis
func (PersonalityAnalysis) TableName() string {
	return "personality_analyses"
}

// PersonalityPercentile is the only mutable persisted entity of the engine:
// one row per user x archetype, updated in place on every analysis.
//
// ScoreHistory holds up to 30 {score, percentile, recorded_at} tuples as a
// JSON array; the oldest entries are dropped first when the cap is exceeded.
type PersonalityPercentile struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         string    `gorm:"type:uuid;not null;uniqueIndex:idx_percentile_user_archetype" json:"user_id"`
	Archetype      string    `gorm:"type:text;not null;uniqueIndex:idx_percentile_user_archetype" json:"archetype"`
	Percentile     int       `gorm:"not null" json:"percentile"`
	ScoreHistory   string    `gorm:"type:jsonb;default:'[]'" json:"score_history"`
	LastCalculated time.Time `gorm:"not null" json:"last_calculated"`
}

// TableName specifies the table name for PersonalityPercentile
func (PersonalityPercentile) TableName() string {
	return "personality_percentiles"
}

// InterestEvolution is the append-only trail of interest tag set growth.
// A row is written only when the update adds at least one new tag.
type InterestEvolution struct {
	ID                string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            string    `gorm:"type:uuid;index;not null" json:"user_id"`
	PreviousInterests string    `gorm:"type:jsonb;not null" json:"previous_interests"`
	UpdatedInterests  string    `gorm:"type:jsonb;not null" json:"updated_interests"`
	Reason            string    `gorm:"type:text;not null" json:"reason"` // assessment, goal_creation, opportunity_application, ai_chat
	Confidence        float64   `gorm:"type:decimal(5,4);not null" json:"confidence"`
	CreatedAt         time.Time `gorm:"index;autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for InterestEvolution
func (InterestEvolution) TableName() string {
	return "interest_evolutions"
}

// ScorePoint is one entry in a PersonalityPercentile score history
type ScorePoint struct {
	Score      float64   `json:"score"`
	Percentile int       `json:"percentile"`
	RecordedAt time.Time `json:"recorded_at"`
}
