package database

// The 8 personality archetypes. Every score distribution carries exactly
// these keys.
const (
	ArchetypeLeader        = "Leader"
	ArchetypeInnovator     = "Innovator"
	ArchetypeCollaborator  = "Collaborator"
	ArchetypePerfectionist = "Perfectionist"
	ArchetypeExplorer      = "Explorer"
	ArchetypeMediator      = "Mediator"
	ArchetypeStrategist    = "Strategist"
	ArchetypeAnchor        = "Anchor"
)

// Archetypes lists all archetype names in canonical order
var Archetypes = []string{
	ArchetypeLeader,
	ArchetypeInnovator,
	ArchetypeCollaborator,
	ArchetypePerfectionist,
	ArchetypeExplorer,
	ArchetypeMediator,
	ArchetypeStrategist,
	ArchetypeAnchor,
}

// The 9 canonical interest categories
const (
	InterestScience        = "Science"
	InterestTechnology     = "Technology"
	InterestArts           = "Arts"
	InterestLeadership     = "Leadership"
	InterestSports         = "Sports"
	InterestCommunity      = "Community"
	InterestBusiness       = "Business"
	InterestEnvironment    = "Environment"
	InterestSocialSciences = "Social Sciences"
)

// InterestCategories lists all interest tags in canonical order
var InterestCategories = []string{
	InterestScience,
	InterestTechnology,
	InterestArts,
	InterestLeadership,
	InterestSports,
	InterestCommunity,
	InterestBusiness,
	InterestEnvironment,
	InterestSocialSciences,
}

// Interest evolution reason codes
const (
	ReasonAssessment             = "assessment"
	ReasonGoalCreation           = "goal_creation"
	ReasonOpportunityApplication = "opportunity_application"
	ReasonAiChat                 = "ai_chat"
)

// Opportunity action types
const (
	OpportunityActionViewed  = "viewed"
	OpportunityActionSaved   = "saved"
	OpportunityActionApplied = "applied"
)

// Engine defaults
const (
	// Goal completion rate tiers for the fallback scorer
	CompletionRateHigh   = 0.8
	CompletionRateMedium = 0.6
	CompletionRateLow    = 0.3

	// Team interaction count above which collaboration archetypes get boosted
	TeamInteractionBoostThreshold = 5

	// Goal category diversity thresholds
	CategoryDiversityHigh = 3

	// Percentile assigned when no comparison population exists
	DefaultPercentile = 50
)
