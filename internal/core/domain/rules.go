package domain

// TierRule pairs a safeguard tier with the keyword set that triggers it.
type TierRule struct {
	// Tier is assigned when any keyword matches.
	Tier Tier

	// Keywords are matched as case-insensitive substrings of the
	// cleaned query. Matching is not word-boundary aware, so short
	// keywords can match inside unrelated words; this is a known
	// false-positive source.
	Keywords []string
}

// TopicRule pairs a query type with the keyword set that selects it.
type TopicRule struct {
	Type     QueryType
	Keywords []string
}

// SafeguardRules is the versioned rule table driving classification.
// Rules are evaluated in slice order and the first match wins, so the
// ordering of both tables is load-bearing. The table is constructed
// once and injected into the classifier; it is never mutated.
type SafeguardRules struct {
	// Version identifies the rule revision for audit logging.
	Version string

	// TierRules are evaluated first. An explicit request to reach a
	// human ranks before automatically detected critical content, so
	// the escalation-trigger entry precedes the critical entry even
	// though it assigns a lower tier.
	TierRules []TierRule

	// TopicRules assign the query type. Checked in order; a query
	// matching no topic is QueryGeneral.
	TopicRules []TopicRule
}

// DefaultRules returns the production rule table for the program
// office assistant.
func DefaultRules() SafeguardRules {
	return SafeguardRules{
		Version: "2025-08",
		TierRules: []TierRule{
			{
				// Explicit human-contact requests: the user is choosing
				// to escalate, not self-disclosing crisis content.
				Tier: TierCautious,
				Keywords: []string{
					"speak to someone",
					"speak to a person",
					"speak to a human",
					"speak with someone",
					"talk to someone",
					"talk to a person",
					"talk to a human",
					"contact an advisor",
					"contact an adviser",
					"real person",
					"human help",
				},
			},
			{
				Tier: TierCritical,
				Keywords: []string{
					"suicide",
					"suicidal",
					"kill myself",
					"end my life",
					"want to die",
					"self-harm",
					"self harm",
					"hurt myself",
					"overdose",
					"harassment",
					"harassed",
					"harassing",
					"assault",
					"assaulted",
					"abuse",
					"stalking",
					"stalked",
					"threatened",
					"violence",
					"emergency",
					"crisis",
				},
			},
			{
				Tier: TierCautious,
				Keywords: []string{
					"stress",
					"stressed",
					"anxious",
					"anxiety",
					"depressed",
					"depression",
					"overwhelmed",
					"lonely",
					"homesick",
					"struggling",
					"cant cope",
					"can't cope",
					"burnout",
					"burned out",
					"mental health",
					"panic attack",
					"extenuating circumstances",
					"appeal",
					"complaint",
				},
			},
		},
		TopicRules: []TopicRule{
			{Type: QueryAcademic, Keywords: []string{
				"assignment", "exam", "grade", "grading", "classification",
				"course", "module", "lecture", "dissertation", "credit",
				"study", "syllabus",
			}},
			{Type: QueryAdministrative, Keywords: []string{
				"enrolment", "enrollment", "registration", "register",
				"tuition", "fee", "fees", "invoice", "visa", "transcript",
				"graduation", "certificate", "deadline",
			}},
			{Type: QueryTechnical, Keywords: []string{
				"canvas", "login", "log in", "password", "portal", "wifi",
				"wi-fi", "email", "account", "upload", "access",
			}},
			{Type: QueryPolicy, Keywords: []string{
				"policy", "policies", "attendance", "plagiarism",
				"academic integrity", "regulation", "regulations", "rule",
				"rules", "code of conduct", "misconduct",
			}},
			{Type: QueryWellness, Keywords: []string{
				"wellbeing", "well-being", "wellness", "counselling",
				"counseling", "health", "support service", "gym", "sport",
			}},
		},
	}
}
