package personality

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"time"

	"growthpath-insight/database"
)

// PercentileInfo is the per-archetype view returned to callers
type PercentileInfo struct {
	Percentile     int                   `json:"percentile"`
	ScoreHistory   []database.ScorePoint `json:"score_history"`
	LastCalculated time.Time             `json:"last_calculated"`
}

// percentileOf ranks a score against a population: the share of others
// strictly below, rounded to an integer percent. An empty population ranks
// at the default midpoint.
func percentileOf(score float64, population []float64) int {
	if len(population) == 0 {
		return database.DefaultPercentile
	}
	below := 0
	for _, other := range population {
		if other < score {
			below++
		}
	}
	return int(math.Round(100 * float64(below) / float64(len(population))))
}

// computePercentiles ranks every archetype score against the current
// population of other users' stored scores. Must run before the subject's
// own row is updated with the new scores.
func (e *Engine) computePercentiles(userID string, scores Scores) (map[string]int, error) {
	percentiles := make(map[string]int, len(database.Archetypes))
	for _, archetype := range database.Archetypes {
		population, err := e.store.ArchetypeScorePopulation(archetype, userID)
		if err != nil {
			return nil, err
		}
		percentiles[archetype] = percentileOf(scores[archetype], population)
	}
	return percentiles, nil
}

// applyPercentiles upserts the per-archetype percentile rows: overwrite the
// current percentile, append a history point, and truncate the history head
// beyond the configured cap (oldest first).
func (e *Engine) applyPercentiles(userID string, scores Scores, percentiles map[string]int) error {
	now := e.now()
	for _, archetype := range database.Archetypes {
		rec, err := e.store.PercentileRecord(userID, archetype)
		if err != nil {
			return err
		}

		point := database.ScorePoint{
			Score:      scores[archetype],
			Percentile: percentiles[archetype],
			RecordedAt: now,
		}

		var history []database.ScorePoint
		if rec == nil {
			rec = &database.PersonalityPercentile{
				UserID:    userID,
				Archetype: archetype,
			}
		} else if rec.ScoreHistory != "" {
			if err := json.Unmarshal([]byte(rec.ScoreHistory), &history); err != nil {
				log.Printf("⚠️ Corrupt score history for %s/%s, resetting: %v", userID, archetype, err)
				history = nil
			}
		}

		history = append(history, point)
		if len(history) > e.cfg.PercentileHistoryLimit {
			history = history[len(history)-e.cfg.PercentileHistoryLimit:]
		}

		historyJSON, err := json.Marshal(history)
		if err != nil {
			return fmt.Errorf("failed to marshal score history: %w", err)
		}

		rec.Percentile = percentiles[archetype]
		rec.ScoreHistory = string(historyJSON)
		rec.LastCalculated = now

		if err := e.store.SavePercentile(rec); err != nil {
			return err
		}
	}
	return nil
}

// GetUserPercentiles returns the current percentile, bounded score history
// and last-calculated timestamp for each archetype the user has a record
// for.
func (e *Engine) GetUserPercentiles(userID string) (map[string]PercentileInfo, error) {
	records, err := e.store.PercentileRecords(userID)
	if err != nil {
		return nil, err
	}

	result := make(map[string]PercentileInfo, len(records))
	for _, rec := range records {
		var history []database.ScorePoint
		if rec.ScoreHistory != "" {
			if err := json.Unmarshal([]byte(rec.ScoreHistory), &history); err != nil {
				log.Printf("⚠️ Corrupt score history for %s/%s: %v", userID, rec.Archetype, err)
			}
		}
		result[rec.Archetype] = PercentileInfo{
			Percentile:     rec.Percentile,
			ScoreHistory:   history,
			LastCalculated: rec.LastCalculated,
		}
	}
	return result, nil
}

// RecalculateAllPercentiles re-ranks every user holding stored scores
// against the current population. Used by the admin endpoint and the
// nightly batch; one user's failure aborts the run so partial passes are
// visible to the operator.
func (e *Engine) RecalculateAllPercentiles() error {
	users, err := e.store.UsersWithScores()
	if err != nil {
		return err
	}

	log.Printf("📊 Recalculating percentiles for %d users", len(users))

	for _, u := range users {
		scores, err := ScoresFromJSON(u.Scores)
		if err != nil {
			log.Printf("⚠️ Skipping user %s, unreadable scores: %v", u.UserID, err)
			continue
		}

		percentiles, err := e.computePercentiles(u.UserID, scores)
		if err != nil {
			return fmt.Errorf("recalculation failed for user %s: %w", u.UserID, err)
		}
		if err := e.applyPercentiles(u.UserID, scores, percentiles); err != nil {
			return fmt.Errorf("recalculation failed for user %s: %w", u.UserID, err)
		}
	}

	log.Println("✅ Percentile recalculation complete")
	return nil
}
