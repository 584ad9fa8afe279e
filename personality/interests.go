package personality

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"growthpath-insight/database"
)

// interestKeywords maps each of the 9 canonical interest categories to the
// text fragments that flag it. Matching is case-insensitive substring.
var interestKeywords = map[string][]string{
	database.InterestScience:        {"science", "biology", "chemistry", "physics", "research", "lab"},
	database.InterestTechnology:     {"code", "coding", "program", "software", "computer", "tech", "robot", "engineer"},
	database.InterestArts:           {"art", "music", "paint", "design", "draw", "theater", "write", "film"},
	database.InterestLeadership:     {"lead", "leadership", "organiz", "president", "captain", "mentor"},
	database.InterestSports:         {"sport", "soccer", "basketball", "running", "fitness", "athletic", "swim"},
	database.InterestCommunity:      {"volunteer", "community", "charity", "service", "helping people"},
	database.InterestBusiness:       {"business", "entrepreneur", "startup", "marketing", "finance", "invest"},
	database.InterestEnvironment:    {"environment", "climate", "nature", "sustainab", "recycl", "green"},
	database.InterestSocialSciences: {"psychology", "history", "society", "culture", "politics", "economics"},
}

// goalCategoryInterests maps platform goal categories to interest tags
var goalCategoryInterests = map[string]string{
	"Academic":    database.InterestScience,
	"Technology":  database.InterestTechnology,
	"Creative":    database.InterestArts,
	"Leadership":  database.InterestLeadership,
	"Health":      database.InterestSports,
	"Fitness":     database.InterestSports,
	"Community":   database.InterestCommunity,
	"Career":      database.InterestBusiness,
	"Environment": database.InterestEnvironment,
	"Personal":    database.InterestSocialSciences,
}

// interestsFromText keyword-scans free text against all 9 categories
func interestsFromText(text string) []string {
	lower := strings.ToLower(text)
	var matched []string
	for _, category := range database.InterestCategories {
		for _, kw := range interestKeywords[category] {
			if strings.Contains(lower, kw) {
				matched = append(matched, category)
				break
			}
		}
	}
	return matched
}

// canonicalInterest maps a free-form tag onto the fixed category list,
// or returns false for tags outside it (e.g. invented by the model)
func canonicalInterest(tag string) (string, bool) {
	for _, category := range database.InterestCategories {
		if strings.EqualFold(strings.TrimSpace(tag), category) {
			return category, true
		}
	}
	return "", false
}

// updateInterests widens the user's tag set with the candidates. Tags are
// only ever added: the new set is the union, and an InterestEvolution
// record is written only when the union strictly grows. Returns whether a
// write happened.
func (e *Engine) updateInterests(userID string, candidates []string, reason string) (bool, error) {
	if len(candidates) == 0 {
		return false, nil
	}

	user, err := e.store.GetUser(userID)
	if err != nil || user == nil {
		return false, err
	}

	existing := parseInterests(user.Interests)
	have := make(map[string]bool, len(existing))
	for _, tag := range existing {
		have[tag] = true
	}

	updated := append([]string(nil), existing...)
	grew := false
	for _, candidate := range candidates {
		tag, ok := canonicalInterest(candidate)
		if !ok || have[tag] {
			continue
		}
		have[tag] = true
		updated = append(updated, tag)
		grew = true
	}
	if !grew {
		return false, nil
	}
	sort.Strings(updated)

	previousJSON, err := json.Marshal(existing)
	if err != nil {
		return false, fmt.Errorf("failed to marshal interests: %w", err)
	}
	updatedJSON, err := json.Marshal(updated)
	if err != nil {
		return false, fmt.Errorf("failed to marshal interests: %w", err)
	}

	rec := &database.InterestEvolution{
		ID:                uuid.New().String(),
		UserID:            userID,
		PreviousInterests: string(previousJSON),
		UpdatedInterests:  string(updatedJSON),
		Reason:            reason,
		Confidence:        e.cfg.InterestConfidence,
	}
	if err := e.store.CreateInterestEvolution(rec); err != nil {
		return false, err
	}
	if err := e.store.UpdateUserInterests(userID, string(updatedJSON)); err != nil {
		return false, err
	}

	if e.events != nil {
		e.events.Broadcast("interest_evolution", map[string]interface{}{
			"user_id":   userID,
			"interests": updated,
			"reason":    reason,
		})
	}

	return true, nil
}
