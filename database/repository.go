package database

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ProfileRepository handles database operations for user profiles and the
// behavioral event tables feeding personality analysis
type ProfileRepository struct {
	db *Database
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *Database) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// InitSchema performs auto-migration for all engine tables
func (r *ProfileRepository) InitSchema() error {
	fmt.Println("🔄 Starting database schema initialization...")

	err := r.db.db.AutoMigrate(
		&User{},
		// Behavioral event tables
		&AssessmentResponse{},
		&Goal{},
		&Achievement{},
		&TeamInteraction{},
		&OpportunityInteraction{},
		&ChatInteraction{},
		// Analysis output tables
		&PersonalityAnalysis{},
		&PersonalityPercentile{},
		&InterestEvolution{},
	)
	if err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}

	fmt.Println("✅ Database schema initialized")
	return nil
}

// ============================================================================
// Users
// ============================================================================

// CreateUser inserts a new user row
func (r *ProfileRepository) CreateUser(user *User) error {
	if err := r.db.db.Create(user).Error; err != nil {
		return fmt.Errorf("CreateUser: %w", err)
	}
	return nil
}

// GetUser retrieves a user by ID. Returns nil without error when the user
// does not exist; callers treat that as an empty-input condition.
func (r *ProfileRepository) GetUser(userID string) (*User, error) {
	var user User
	err := r.db.db.Where("id = ?", userID).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("GetUser: %w", err)
	}
	return &user, nil
}

// UpdateUserPersonality overwrites the denormalized archetype fields on the
// user row. The engine is the sole writer of these columns.
func (r *ProfileRepository) UpdateUserPersonality(userID, personalityType, scoresJSON string) error {
	err := r.db.db.Model(&User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"personality_type":   personalityType,
		"personality_scores": scoresJSON,
	}).Error
	if err != nil {
		return fmt.Errorf("UpdateUserPersonality: %w", err)
	}
	return nil
}

// UpdateUserInterests overwrites the user's interest tag list
func (r *ProfileRepository) UpdateUserInterests(userID, interestsJSON string) error {
	err := r.db.db.Model(&User{}).Where("id = ?", userID).
		Update("interests", interestsJSON).Error
	if err != nil {
		return fmt.Errorf("UpdateUserInterests: %w", err)
	}
	return nil
}

// ============================================================================
// Behavioral Events
// ============================================================================

// CreateAssessmentResponse persists one assessment answer
func (r *ProfileRepository) CreateAssessmentResponse(resp *AssessmentResponse) error {
	if err := r.db.db.Create(resp).Error; err != nil {
		return fmt.Errorf("CreateAssessmentResponse: %w", err)
	}
	return nil
}

// CreateGoal persists a new goal
func (r *ProfileRepository) CreateGoal(goal *Goal) error {
	if err := r.db.db.Create(goal).Error; err != nil {
		return fmt.Errorf("CreateGoal: %w", err)
	}
	return nil
}

// CompleteGoal marks a goal completed. The update is scoped to the owning
// user so one user cannot complete another's goal.
func (r *ProfileRepository) CompleteGoal(userID string, goalID int64) error {
	now := time.Now()
	result := r.db.db.Model(&Goal{}).
		Where("id = ? AND user_id = ?", goalID, userID).
		Updates(map[string]interface{}{
			"completed":    true,
			"completed_at": &now,
		})
	if result.Error != nil {
		return fmt.Errorf("CompleteGoal: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("CompleteGoal: goal %d not found for user %s", goalID, userID)
	}
	return nil
}

// CreateAchievement persists an achievement
func (r *ProfileRepository) CreateAchievement(ach *Achievement) error {
	if err := r.db.db.Create(ach).Error; err != nil {
		return fmt.Errorf("CreateAchievement: %w", err)
	}
	return nil
}

// CreateTeamInteraction persists a team action
func (r *ProfileRepository) CreateTeamInteraction(ti *TeamInteraction) error {
	if err := r.db.db.Create(ti).Error; err != nil {
		return fmt.Errorf("CreateTeamInteraction: %w", err)
	}
	return nil
}

// CreateOpportunityInteraction persists an opportunity action
func (r *ProfileRepository) CreateOpportunityInteraction(oi *OpportunityInteraction) error {
	if err := r.db.db.Create(oi).Error; err != nil {
		return fmt.Errorf("CreateOpportunityInteraction: %w", err)
	}
	return nil
}

// CreateChatInteraction persists one assistant message/response pair
func (r *ProfileRepository) CreateChatInteraction(ci *ChatInteraction) error {
	if err := r.db.db.Create(ci).Error; err != nil {
		return fmt.Errorf("CreateChatInteraction: %w", err)
	}
	return nil
}

// ============================================================================
// Windowed Behavior Reads
// ============================================================================

// AssessmentResponsesSince returns the user's assessment answers created on
// or after the cutoff
func (r *ProfileRepository) AssessmentResponsesSince(userID string, since time.Time) ([]AssessmentResponse, error) {
	var responses []AssessmentResponse
	err := r.db.db.Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at ASC").Find(&responses).Error
	if err != nil {
		return nil, fmt.Errorf("AssessmentResponsesSince: %w", err)
	}
	return responses, nil
}

// GoalsByUser returns the user's full goal history (goals are unwindowed)
func (r *ProfileRepository) GoalsByUser(userID string) ([]Goal, error) {
	var goals []Goal
	err := r.db.db.Where("user_id = ?", userID).
		Order("created_at ASC").Find(&goals).Error
	if err != nil {
		return nil, fmt.Errorf("GoalsByUser: %w", err)
	}
	return goals, nil
}

// AchievementsSince returns achievements earned on or after the cutoff
func (r *ProfileRepository) AchievementsSince(userID string, since time.Time) ([]Achievement, error) {
	var achievements []Achievement
	err := r.db.db.Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at ASC").Find(&achievements).Error
	if err != nil {
		return nil, fmt.Errorf("AchievementsSince: %w", err)
	}
	return achievements, nil
}

// TeamInteractionsSince returns team actions on or after the cutoff
func (r *ProfileRepository) TeamInteractionsSince(userID string, since time.Time) ([]TeamInteraction, error) {
	var interactions []TeamInteraction
	err := r.db.db.Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at ASC").Find(&interactions).Error
	if err != nil {
		return nil, fmt.Errorf("TeamInteractionsSince: %w", err)
	}
	return interactions, nil
}

// OpportunityInteractionsSince returns opportunity actions on or after the cutoff
func (r *ProfileRepository) OpportunityInteractionsSince(userID string, since time.Time) ([]OpportunityInteraction, error) {
	var interactions []OpportunityInteraction
	err := r.db.db.Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at ASC").Find(&interactions).Error
	if err != nil {
		return nil, fmt.Errorf("OpportunityInteractionsSince: %w", err)
	}
	return interactions, nil
}

// ChatInteractionsSince returns chat transcripts on or after the cutoff
func (r *ProfileRepository) ChatInteractionsSince(userID string, since time.Time) ([]ChatInteraction, error) {
	var interactions []ChatInteraction
	err := r.db.db.Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at ASC").Find(&interactions).Error
	if err != nil {
		return nil, fmt.Errorf("ChatInteractionsSince: %w", err)
	}
	return interactions, nil
}

// ============================================================================
// Analysis Output
// ============================================================================

// CreateAnalysis appends one audit record. Analysis rows are immutable.
func (r *ProfileRepository) CreateAnalysis(rec *PersonalityAnalysis) error {
	if err := r.db.db.Create(rec).Error; err != nil {
		return fmt.Errorf("CreateAnalysis: %w", err)
	}
	return nil
}

// LatestAnalyses returns the most recent analysis records for a user
func (r *ProfileRepository) LatestAnalyses(userID string, limit int) ([]PersonalityAnalysis, error) {
	var records []PersonalityAnalysis
	err := r.db.db.Where("user_id = ?", userID).
		Order("created_at DESC").Limit(limit).Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("LatestAnalyses: %w", err)
	}
	return records, nil
}

// CreateInterestEvolution appends one interest evolution record
func (r *ProfileRepository) CreateInterestEvolution(rec *InterestEvolution) error {
	if err := r.db.db.Create(rec).Error; err != nil {
		return fmt.Errorf("CreateInterestEvolution: %w", err)
	}
	return nil
}

// PercentileRecord retrieves the percentile row for a user/archetype pair.
// Returns nil without error when no row exists yet.
func (r *ProfileRepository) PercentileRecord(userID, archetype string) (*PersonalityPercentile, error) {
	var rec PersonalityPercentile
	err := r.db.db.Where("user_id = ? AND archetype = ?", userID, archetype).First(&rec).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("PercentileRecord: %w", err)
	}
	return &rec, nil
}

// SavePercentile inserts or updates a percentile row in place
func (r *ProfileRepository) SavePercentile(rec *PersonalityPercentile) error {
	if err := r.db.db.Save(rec).Error; err != nil {
		return fmt.Errorf("SavePercentile: %w", err)
	}
	return nil
}

// PercentileRecords returns all percentile rows for a user
func (r *ProfileRepository) PercentileRecords(userID string) ([]PersonalityPercentile, error) {
	var records []PersonalityPercentile
	err := r.db.db.Where("user_id = ?", userID).Order("archetype ASC").Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("PercentileRecords: %w", err)
	}
	return records, nil
}
