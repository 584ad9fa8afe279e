package personality

import (
	"encoding/json"
	"fmt"
	"math"

	"growthpath-insight/database"
)

// Scores maps each of the 8 archetypes to a non-negative value. A normalized
// Scores is a probability distribution: all 8 keys present, values summing
// to 1.0.
type Scores map[string]float64

// NewScores returns a zero-valued distribution with all 8 archetype keys
func NewScores() Scores {
	scores := make(Scores, len(database.Archetypes))
	for _, name := range database.Archetypes {
		scores[name] = 0
	}
	return scores
}

// Sum returns the total mass of the distribution
func (s Scores) Sum() float64 {
	total := 0.0
	for _, v := range s {
		total += v
	}
	return total
}

// Normalize scales all values so they sum to 1.0. A zero-mass distribution
// becomes uniform.
func (s Scores) Normalize() {
	total := s.Sum()
	if total <= 0 {
		uniform := 1.0 / float64(len(database.Archetypes))
		for _, name := range database.Archetypes {
			s[name] = uniform
		}
		return
	}
	for name, v := range s {
		s[name] = v / total
	}
}

// Primary returns the arg-max archetype. Ties break on canonical archetype
// order so the result is deterministic.
func (s Scores) Primary() string {
	best := database.Archetypes[0]
	bestScore := math.Inf(-1)
	for _, name := range database.Archetypes {
		if s[name] > bestScore {
			best = name
			bestScore = s[name]
		}
	}
	return best
}

// Complete reports whether all 8 archetype keys are present
func (s Scores) Complete() bool {
	if len(s) != len(database.Archetypes) {
		return false
	}
	for _, name := range database.Archetypes {
		if _, ok := s[name]; !ok {
			return false
		}
	}
	return true
}

// MarshalJSONString serializes the distribution for JSONB storage
func (s Scores) MarshalJSONString() (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to marshal scores: %w", err)
	}
	return string(data), nil
}

// ScoresFromJSON deserializes a stored distribution
func ScoresFromJSON(raw string) (Scores, error) {
	var scores Scores
	if err := json.Unmarshal([]byte(raw), &scores); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scores: %w", err)
	}
	return scores, nil
}
