package personality

import (
	"strings"

	"growthpath-insight/database"
)

// Score increments for the deterministic scorer
const (
	seedBase       = 0.08
	seedJitter     = 0.04
	keywordBoost   = 0.15
	completionTop1 = 0.30
	completionTop2 = 0.25
	completionTop3 = 0.20
	completionTop4 = 0.15
	diversityMajor = 0.20
	diversityMinor = 0.15
	focusMajor     = 0.15
	focusMinor     = 0.10
	teamworkMajor  = 0.25
	teamworkMinor  = 0.15
)

// archetypeKeywords maps each archetype to the answer fragments that count
// as evidence for it. Fragments are stem forms ("organiz" covers organize,
// organizing, organized) matched case-insensitively; every matched fragment
// counts, so strong evidence outweighs a single incidental hit elsewhere.
var archetypeKeywords = map[string][]string{
	database.ArchetypeLeader:        {"lead", "organiz", "take charge", "taking charge", "manage", "direct", "coordinate"},
	database.ArchetypeInnovator:     {"creativ", "innovat", "new idea", "invent", "experiment", "original"},
	database.ArchetypeCollaborator:  {"team", "together", "collaborat", "help others", "share", "group"},
	database.ArchetypePerfectionist: {"detail", "perfect", "precise", "thorough", "quality", "careful"},
	database.ArchetypeExplorer:      {"explor", "discover", "adventure", "try new", "curious", "variety"},
	database.ArchetypeMediator:      {"listen", "understand", "resolve", "empath", "balance", "peace"},
	database.ArchetypeStrategist:    {"plan", "strategy", "analyz", "long-term", "prioritize", "think ahead"},
	database.ArchetypeAnchor:        {"support", "reliable", "consistent", "stable", "depend", "steady"},
}

// fallbackAnalysis is the deterministic rule-based scorer, used when the
// LLM call fails or returns an unparseable result. It always produces a
// complete, normalized distribution and a fixed low confidence.
func (e *Engine) fallbackAnalysis(snap *database.BehaviorSnapshot) *Result {
	scores := NewScores()

	// Near-uniform positive seeds, assigned in shuffled order so no
	// archetype gains a systematic head start
	e.mu.Lock()
	order := make([]string, len(database.Archetypes))
	copy(order, database.Archetypes)
	e.rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	for _, name := range order {
		scores[name] = seedBase + e.rng.Float64()*seedJitter
	}
	e.mu.Unlock()

	// Keyword evidence from assessment answers
	for _, resp := range snap.Assessments {
		answer := strings.ToLower(resp.Response)
		for archetype, keywords := range archetypeKeywords {
			for _, kw := range keywords {
				if strings.Contains(answer, kw) {
					scores[archetype] += keywordBoost
				}
			}
		}
	}

	// Goal completion behavior
	if len(snap.Goals) > 0 {
		rate := snap.GoalCompletionRate()
		switch {
		case rate > database.CompletionRateHigh:
			scores[database.ArchetypePerfectionist] += completionTop1
			scores[database.ArchetypeAnchor] += completionTop2
			scores[database.ArchetypeStrategist] += completionTop3
			scores[database.ArchetypeLeader] += completionTop4
		case rate >= database.CompletionRateMedium:
			scores[database.ArchetypeStrategist] += completionTop2
			scores[database.ArchetypePerfectionist] += completionTop3
			scores[database.ArchetypeAnchor] += completionTop4
		case rate >= database.CompletionRateLow:
			scores[database.ArchetypeCollaborator] += completionTop3
			scores[database.ArchetypeMediator] += completionTop4
		default:
			scores[database.ArchetypeExplorer] += completionTop3
			scores[database.ArchetypeInnovator] += completionTop4
		}

		// Category spread: many distinct areas reads as exploration,
		// a single area as focus
		distinct := len(snap.GoalCategories())
		if distinct > database.CategoryDiversityHigh {
			scores[database.ArchetypeExplorer] += diversityMajor
			scores[database.ArchetypeInnovator] += diversityMinor
		} else if distinct == 1 {
			scores[database.ArchetypePerfectionist] += focusMajor
			scores[database.ArchetypeAnchor] += focusMinor
		}
	}

	// Team activity
	if len(snap.TeamInteractions) > database.TeamInteractionBoostThreshold {
		scores[database.ArchetypeCollaborator] += teamworkMajor
		scores[database.ArchetypeMediator] += teamworkMinor
	}

	scores.Normalize()

	return &Result{
		Primary:    scores.Primary(),
		Scores:     scores,
		Confidence: e.cfg.FallbackConfidence,
		Reasoning:  fallbackReasoning,
		Fallback:   true,
	}
}
