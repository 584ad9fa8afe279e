package llm

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"growthpath-insight/database"
	models "growthpath-insight/database/models_pkg"
)

// Prompt sizing constants
const (
	maxRawAnswers     = 20
	maxAnswerChars    = 200
	scoreSumTolerance = 1e-6
)

// personalitySystemMessage pins the model to the 8 fixed archetypes and the
// exact JSON shape the parser validates against. Scores must already form a
// probability distribution; the engine does not re-normalize model output.
const personalitySystemMessage = `You are a student development psychologist. Classify a student's behavioral profile across exactly these 8 personality archetypes:

- Leader: takes charge, organizes people, drives outcomes
- Innovator: generates novel ideas, experiments, challenges convention
- Collaborator: thrives in teams, shares, helps peers succeed
- Perfectionist: detail-driven, high standards, finishes what they start
- Explorer: curious, seeks variety and new experiences
- Mediator: listens, balances viewpoints, resolves conflict
- Strategist: plans long-term, analyzes before acting
- Anchor: steady, reliable, the stable point of a group

Respond with a single JSON object of exactly this shape:
{"personalityScores": {"Leader": 0.0, "Innovator": 0.0, "Collaborator": 0.0, "Perfectionist": 0.0, "Explorer": 0.0, "Mediator": 0.0, "Strategist": 0.0, "Anchor": 0.0}, "primaryPersonality": "...", "confidence": 0.0, "reasoning": "..."}

All 8 archetype keys are required. Scores must be non-negative and sum to 1.0. Confidence is between 0 and 1. Base the analysis strictly on the evidence provided; do not invent behavior.`

// chatInsightSystemMessage drives interest/archetype extraction from a single
// assistant exchange
const chatInsightSystemMessage = `You extract developmental signals from one exchange between a student and an AI study assistant. Interest tags must come from this fixed list: Science, Technology, Arts, Leadership, Sports, Community, Business, Environment, Social Sciences.

Respond with a single JSON object of exactly this shape:
{"interests": ["..."], "personalityIndicators": {"Leader": 0.0}, "confidence": 0.0}

personalityIndicators maps archetype names (Leader, Innovator, Collaborator, Perfectionist, Explorer, Mediator, Strategist, Anchor) to confidence values between 0 and 1; include only archetypes with real evidence. Return empty collections when the exchange carries no signal.`

// PersonalitySystemMessage returns the classification system instruction
func PersonalitySystemMessage() string {
	return personalitySystemMessage
}

// ChatInsightSystemMessage returns the chat extraction system instruction
func ChatInsightSystemMessage() string {
	return chatInsightSystemMessage
}

// countByKey builds a histogram and returns its keys in stable order
func countByKey(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// truncate shortens free text for prompt inclusion
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// FormatPersonalityPrompt renders a behavior snapshot into the analysis
// prompt: per-assessment-type counts with raw answers, goal statistics and
// category histogram, and the achievement/team/opportunity histograms.
func FormatPersonalityPrompt(snap *models.BehaviorSnapshot) string {
	var sb strings.Builder
	sb.Grow(2048 + len(snap.Assessments)*120)

	sb.WriteString("Analyze this student's recent behavior (trailing 30 days unless noted):\n\n")

	if snap.CurrentPersonality != nil {
		sb.WriteString(fmt.Sprintf("Current archetype: %s\n", *snap.CurrentPersonality))
	} else {
		sb.WriteString("Current archetype: none (first analysis)\n")
	}
	if len(snap.Interests) > 0 {
		sb.WriteString(fmt.Sprintf("Current interests: %s\n", strings.Join(snap.Interests, ", ")))
	}
	sb.WriteString("\n")

	// Assessment responses, grouped by assessment type
	sb.WriteString(fmt.Sprintf("📝 Assessment responses: %d\n", len(snap.Assessments)))
	byType := make(map[string]int)
	for _, a := range snap.Assessments {
		byType[a.AssessmentType]++
	}
	for _, t := range countByKey(byType) {
		sb.WriteString(fmt.Sprintf("  - %s: %d responses\n", t, byType[t]))
	}
	for i, a := range snap.Assessments {
		if i >= maxRawAnswers {
			sb.WriteString(fmt.Sprintf("  (%d more answers omitted)\n", len(snap.Assessments)-maxRawAnswers))
			break
		}
		sb.WriteString(fmt.Sprintf("  [%s/%s] %q\n", a.AssessmentType, a.QuestionID, truncate(a.Response, maxAnswerChars)))
	}
	sb.WriteString("\n")

	// Goals: all-time totals, completion rate, category histogram
	completed := snap.CompletedGoals()
	sb.WriteString(fmt.Sprintf("🎯 Goals (all-time): %d total, %d completed (%.0f%% completion)\n",
		len(snap.Goals), completed, snap.GoalCompletionRate()*100))
	categories := snap.GoalCategories()
	for _, c := range countByKey(categories) {
		sb.WriteString(fmt.Sprintf("  - category %s: %d\n", c, categories[c]))
	}
	sb.WriteString("\n")

	// Achievements by type
	achTypes := make(map[string]int)
	for _, a := range snap.Achievements {
		achTypes[a.AchievementType]++
	}
	sb.WriteString(fmt.Sprintf("🏆 Achievements: %d\n", len(snap.Achievements)))
	for _, t := range countByKey(achTypes) {
		sb.WriteString(fmt.Sprintf("  - %s: %d\n", t, achTypes[t]))
	}
	sb.WriteString("\n")

	// Team interactions by action type
	teamActions := make(map[string]int)
	for _, ti := range snap.TeamInteractions {
		teamActions[ti.ActionType]++
	}
	sb.WriteString(fmt.Sprintf("👥 Team interactions: %d\n", len(snap.TeamInteractions)))
	for _, t := range countByKey(teamActions) {
		sb.WriteString(fmt.Sprintf("  - %s: %d\n", t, teamActions[t]))
	}
	sb.WriteString("\n")

	// Opportunity interactions: category, type and action histograms
	oppCategories := make(map[string]int)
	oppTypes := make(map[string]int)
	oppActions := make(map[string]int)
	for _, oi := range snap.OpportunityInteractions {
		oppCategories[oi.Category]++
		oppTypes[oi.OpportunityType]++
		oppActions[oi.ActionType]++
	}
	sb.WriteString(fmt.Sprintf("🚀 Opportunity interactions: %d\n", len(snap.OpportunityInteractions)))
	for _, c := range countByKey(oppCategories) {
		sb.WriteString(fmt.Sprintf("  - category %s: %d\n", c, oppCategories[c]))
	}
	for _, t := range countByKey(oppTypes) {
		sb.WriteString(fmt.Sprintf("  - type %s: %d\n", t, oppTypes[t]))
	}
	for _, a := range countByKey(oppActions) {
		sb.WriteString(fmt.Sprintf("  - action %s: %d\n", a, oppActions[a]))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("💬 Assistant chat exchanges: %d\n\n", len(snap.ChatInteractions)))

	sb.WriteString("Produce the archetype score distribution, the primary archetype, your confidence, and a short reasoning grounded in the evidence above.")

	return sb.String()
}

// FormatChatInsightPrompt renders one message/response pair for insight
// extraction
func FormatChatInsightPrompt(message, response string) string {
	var sb strings.Builder
	sb.Grow(512 + len(message) + len(response))

	sb.WriteString("Extract interest tags and personality indicators from this exchange:\n\n")
	sb.WriteString(fmt.Sprintf("Student: %s\n", message))
	sb.WriteString(fmt.Sprintf("Assistant: %s\n", response))

	return sb.String()
}

// ArchetypeAnalysis is the validated shape of a personality classification
// reply
type ArchetypeAnalysis struct {
	PersonalityScores  map[string]float64 `json:"personalityScores"`
	PrimaryPersonality string             `json:"primaryPersonality"`
	Confidence         float64            `json:"confidence"`
	Reasoning          string             `json:"reasoning"`
}

// ParseArchetypeAnalysis parses and strictly validates a model reply. Any
// missing archetype key, negative or non-distribution scores, an unknown
// primary archetype or an out-of-range confidence fails the parse; callers
// route failures to the deterministic fallback.
func ParseArchetypeAnalysis(raw string) (*ArchetypeAnalysis, error) {
	var analysis ArchetypeAnalysis
	if err := unmarshalStrictJSON(raw, &analysis); err != nil {
		return nil, fmt.Errorf("malformed analysis payload: %w", err)
	}

	if analysis.PersonalityScores == nil {
		return nil, fmt.Errorf("analysis missing personalityScores")
	}

	sum := 0.0
	for _, name := range database.Archetypes {
		score, ok := analysis.PersonalityScores[name]
		if !ok {
			return nil, fmt.Errorf("analysis missing archetype %q", name)
		}
		if score < 0 {
			return nil, fmt.Errorf("negative score for archetype %q", name)
		}
		sum += score
	}
	if len(analysis.PersonalityScores) != len(database.Archetypes) {
		return nil, fmt.Errorf("analysis contains unknown archetype keys")
	}
	if sum < 1.0-scoreSumTolerance || sum > 1.0+scoreSumTolerance {
		return nil, fmt.Errorf("scores sum to %.6f, expected 1.0", sum)
	}

	if !isArchetype(analysis.PrimaryPersonality) {
		return nil, fmt.Errorf("unknown primary archetype %q", analysis.PrimaryPersonality)
	}
	if analysis.Confidence < 0 || analysis.Confidence > 1 {
		return nil, fmt.Errorf("confidence %.4f out of range", analysis.Confidence)
	}

	return &analysis, nil
}

// ChatInsights is the validated shape of a chat extraction reply
type ChatInsights struct {
	Interests             []string           `json:"interests"`
	PersonalityIndicators map[string]float64 `json:"personalityIndicators"`
	Confidence            float64            `json:"confidence"`
}

// ParseChatInsights parses a chat extraction reply. Indicator keys outside
// the archetype set and out-of-range values are dropped rather than failing
// the whole extraction.
func ParseChatInsights(raw string) (*ChatInsights, error) {
	var insights ChatInsights
	if err := unmarshalStrictJSON(raw, &insights); err != nil {
		return nil, fmt.Errorf("malformed insight payload: %w", err)
	}

	filtered := make(map[string]float64)
	for name, conf := range insights.PersonalityIndicators {
		if isArchetype(name) && conf > 0 && conf <= 1 {
			filtered[name] = conf
		}
	}
	insights.PersonalityIndicators = filtered

	return &insights, nil
}

// unmarshalStrictJSON decodes a model reply into dest. Some models wrap the
// object in a markdown fence even in JSON mode; the fence is stripped before
// decoding.
func unmarshalStrictJSON(raw string, dest interface{}) error {
	body := strings.TrimSpace(raw)
	if strings.HasPrefix(body, "```") {
		body = strings.TrimPrefix(body, "```json")
		body = strings.TrimPrefix(body, "```")
		body = strings.TrimSuffix(strings.TrimSpace(body), "```")
		body = strings.TrimSpace(body)
	}
	return json.Unmarshal([]byte(body), dest)
}

// isArchetype reports whether name is one of the 8 fixed archetypes
func isArchetype(name string) bool {
	for _, a := range database.Archetypes {
		if a == name {
			return true
		}
	}
	return false
}
