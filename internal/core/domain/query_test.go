package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTier_ConfidenceThreshold(t *testing.T) {
	assert.Equal(t, 0.7, TierNormal.ConfidenceThreshold())
	assert.Equal(t, 0.5, TierCautious.ConfidenceThreshold())
	assert.Equal(t, 0.0, TierCritical.ConfidenceThreshold())

	// Unknown tiers behave as normal
	assert.Equal(t, 0.7, Tier(99).ConfidenceThreshold())
}

func TestCleanQuery(t *testing.T) {
	assert.Equal(t, "what is the policy?", CleanQuery("  What Is The POLICY?  "))
	assert.Equal(t, "", CleanQuery("   "))
}
