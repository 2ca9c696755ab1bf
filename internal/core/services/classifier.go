package services

import (
	"strings"

	"github.com/custodia-labs/advisor-cli/internal/core/domain"
	"github.com/custodia-labs/advisor-cli/internal/logger"
)

// SafeguardClassifier assigns a risk tier and topic label to raw query
// text. It is a pure function of the query and the injected rule
// table: no I/O, no shared mutable state, and it never fails - an
// unrecognised query falls through to the normal tier with the
// general topic.
type SafeguardClassifier struct {
	rules domain.SafeguardRules
}

// NewSafeguardClassifier creates a classifier over the given rule
// table. The table's ordering is honoured exactly; see
// domain.SafeguardRules for why escalation triggers precede critical
// keywords.
func NewSafeguardClassifier(rules domain.SafeguardRules) *SafeguardClassifier {
	return &SafeguardClassifier{rules: rules}
}

// RulesVersion identifies the active rule table revision.
func (c *SafeguardClassifier) RulesVersion() string {
	return c.rules.Version
}

// Classify inspects the raw query and returns its analysis.
// Matching is case-insensitive substring containment; it is not
// word-boundary aware, so short keywords can over-trigger inside
// unrelated words. That behaviour is preserved deliberately.
func (c *SafeguardClassifier) Classify(rawQuery string) domain.QueryAnalysis {
	cleaned := domain.CleanQuery(rawQuery)

	tier := domain.TierNormal
	for _, rule := range c.rules.TierRules {
		if kw, ok := matchAny(cleaned, rule.Keywords); ok {
			tier = rule.Tier
			logger.Debug("Safeguard tier %d: keyword %q matched", tier, kw)
			break
		}
	}

	queryType := domain.QueryGeneral
	for _, rule := range c.rules.TopicRules {
		if kw, ok := matchAny(cleaned, rule.Keywords); ok {
			queryType = rule.Type
			logger.Debug("Query type %s: keyword %q matched", queryType, kw)
			break
		}
	}

	return domain.QueryAnalysis{
		OriginalQuery:       rawQuery,
		CleanedQuery:        cleaned,
		Tier:                tier,
		Type:                queryType,
		ConfidenceThreshold: tier.ConfidenceThreshold(),
	}
}

// matchAny reports the first keyword contained in the cleaned query.
func matchAny(cleaned string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if strings.Contains(cleaned, strings.ToLower(kw)) {
			return kw, true
		}
	}
	return "", false
}
