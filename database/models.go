// Package database provides persistence for the growthpath-insight
// personality engine.
//
// This package includes:
//   - GORM/PostgreSQL connection management and schema migration
//   - ProfileRepository: windowed behavioral reads, append-only audit writes
//     and the in-place percentile upsert
//   - PopulationRepository: raw-SQL cross-user score scans over a lib/pq
//     connection, used by percentile computation
//
// Key Concepts:
//   - Behavioral event tables are read through a trailing 30-day window;
//     goals are the one all-time record set
//   - personality_analyses and interest_evolutions are append-only audit
//     trails and are never updated or deleted
//   - personality_percentiles is the single mutable entity, one row per
//     user x archetype with a bounded score history
//
// Data Models:
//
//	All data models (User, Goal, PersonalityAnalysis, etc.) are defined in
//	the models_pkg package to avoid circular import dependencies.
package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	models "growthpath-insight/database/models_pkg"
)

// Database holds the GORM database connection and provides access to the
// underlying DB instance for all repository operations.
type Database struct {
	db *gorm.DB
}

// DB returns the underlying GORM database instance for direct access when needed.
func (d *Database) DB() *gorm.DB {
	return d.db
}

// Connect establishes database connection using GORM
func Connect(host string, port int, dbname, user, password string) (*Database, error) {
	dsn := fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=disable",
		host, port, dbname, user, password)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Silent logging for production
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Database{db: db}, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ============================================================================
// Type Aliases
// ============================================================================

// Aliases let callers import the core models from the database package
// directly without depending on models_pkg.

type User = models.User
type AssessmentResponse = models.AssessmentResponse
type Goal = models.Goal
type Achievement = models.Achievement
type TeamInteraction = models.TeamInteraction
type OpportunityInteraction = models.OpportunityInteraction
type ChatInteraction = models.ChatInteraction
type PersonalityAnalysis = models.PersonalityAnalysis
type PersonalityPercentile = models.PersonalityPercentile
type InterestEvolution = models.InterestEvolution
type ScorePoint = models.ScorePoint
type BehaviorSnapshot = models.BehaviorSnapshot
