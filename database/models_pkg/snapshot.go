package models

// BehaviorSnapshot is the per-run aggregate of a user's recent behavior.
// It is built fresh on every analysis invocation and never persisted.
// Assessments, achievements and the three interaction sets are scoped to
// the trailing behavioral window; Goals carry the full history.
type BehaviorSnapshot struct {
	UserID                  string
	CurrentPersonality      *string
	Interests               []string
	Assessments             []AssessmentResponse
	Goals                   []Goal
	Achievements            []Achievement
	TeamInteractions        []TeamInteraction
	OpportunityInteractions []OpportunityInteraction
	ChatInteractions        []ChatInteraction
}

// Empty reports whether the snapshot carries no behavioral records at all
func (s *BehaviorSnapshot) Empty() bool {
	return len(s.Assessments) == 0 &&
		len(s.Goals) == 0 &&
		len(s.Achievements) == 0 &&
		len(s.TeamInteractions) == 0 &&
		len(s.OpportunityInteractions) == 0 &&
		len(s.ChatInteractions) == 0
}

// CompletedGoals counts goals flagged completed
func (s *BehaviorSnapshot) CompletedGoals() int {
	count := 0
	for _, g := range s.Goals {
		if g.Completed {
			count++
		}
	}
	return count
}

// GoalCompletionRate returns completed/total, or 0 when the user has no goals
func (s *BehaviorSnapshot) GoalCompletionRate() float64 {
	if len(s.Goals) == 0 {
		return 0
	}
	return float64(s.CompletedGoals()) / float64(len(s.Goals))
}

// GoalCategories returns the distinct goal category histogram
func (s *BehaviorSnapshot) GoalCategories() map[string]int {
	categories := make(map[string]int)
	for _, g := range s.Goals {
		if g.Category != "" {
			categories[g.Category]++
		}
	}
	return categories
}
