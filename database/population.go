package database

import (
	"database/sql"
	"fmt"
)

// PopulationRepository reads the cross-user score population used for
// percentile ranking. The scans extract one archetype's score out of the
// users.personality_scores JSONB column, which is cheaper and clearer as
// hand-written SQL on the raw lib/pq connection than through GORM.
type PopulationRepository struct {
	db *DB
}

// NewPopulationRepository creates a new population repository
func NewPopulationRepository(db *DB) *PopulationRepository {
	return &PopulationRepository{db: db}
}

// UserScores pairs a user with their stored score distribution JSON
type UserScores struct {
	UserID string
	Scores string
}

// ArchetypeScorePopulation returns every other user's current score for one
// archetype. Only users with a non-null score column are part of the
// comparison population; excludeUserID keeps the subject out of their own
// ranking.
func (r *PopulationRepository) ArchetypeScorePopulation(archetype, excludeUserID string) ([]float64, error) {
	rows, err := r.db.conn.Query(`
		SELECT COALESCE((personality_scores ->> $1)::double precision, 0)
		FROM users
		WHERE personality_scores IS NOT NULL AND id <> $2
	`, archetype, excludeUserID)
	if err != nil {
		return nil, fmt.Errorf("ArchetypeScorePopulation: %w", err)
	}
	defer rows.Close()

	var scores []float64
	for rows.Next() {
		var score float64
		if err := rows.Scan(&score); err != nil {
			return nil, fmt.Errorf("ArchetypeScorePopulation scan: %w", err)
		}
		scores = append(scores, score)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ArchetypeScorePopulation rows: %w", err)
	}

	return scores, nil
}

// UsersWithScores lists every user holding a stored score distribution,
// for the batch percentile recalculation.
func (r *PopulationRepository) UsersWithScores() ([]UserScores, error) {
	rows, err := r.db.conn.Query(`
		SELECT id, personality_scores
		FROM users
		WHERE personality_scores IS NOT NULL
	`)
	if err != nil {
		return nil, fmt.Errorf("UsersWithScores: %w", err)
	}
	defer rows.Close()

	var users []UserScores
	for rows.Next() {
		var u UserScores
		var scores sql.NullString
		if err := rows.Scan(&u.UserID, &scores); err != nil {
			return nil, fmt.Errorf("UsersWithScores scan: %w", err)
		}
		if !scores.Valid {
			continue
		}
		u.Scores = scores.String
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("UsersWithScores rows: %w", err)
	}

	return users, nil
}
