package domain

import "strings"

// Tier is the safeguard risk level assigned to a query before any
// answer is produced.
type Tier int

// Safeguard tiers, ordered by severity.
const (
	// TierNormal queries are answered comprehensively.
	TierNormal Tier = 1

	// TierCautious queries get basic information plus a recommendation
	// to contact a human advisor.
	TierCautious Tier = 2

	// TierCritical queries bypass generation entirely and receive a
	// pre-authored crisis-resource response.
	TierCritical Tier = 3
)

// ConfidenceThreshold returns the retrieval confidence threshold
// associated with the tier. The threshold is moot for TierCritical
// because generation is bypassed.
func (t Tier) ConfidenceThreshold() float64 {
	switch t {
	case TierCautious:
		return 0.5
	case TierCritical:
		return 0.0
	default:
		return 0.7
	}
}

// QueryType is the topic label assigned to a query, used to shape
// generation guidance.
type QueryType string

// Topic labels. Categories are checked in a fixed order and the first
// match wins; they are not mutually exclusive by keyword set.
const (
	QueryAcademic       QueryType = "academic"
	QueryAdministrative QueryType = "administrative"
	QueryTechnical      QueryType = "technical"
	QueryPolicy         QueryType = "policy"
	QueryWellness       QueryType = "wellness"
	QueryGeneral        QueryType = "general"
)

// QueryAnalysis is the result of classifying a raw query.
// It is created fresh per request, is immutable, and is discarded
// once the request completes.
type QueryAnalysis struct {
	// OriginalQuery is the query exactly as received.
	OriginalQuery string

	// CleanedQuery is the trimmed, lower-cased form used for matching.
	CleanedQuery string

	// Tier is the safeguard risk level.
	Tier Tier

	// Type is the topic label.
	Type QueryType

	// ConfidenceThreshold is derived from the tier.
	ConfidenceThreshold float64
}

// CleanQuery normalises a raw query for keyword matching.
func CleanQuery(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
