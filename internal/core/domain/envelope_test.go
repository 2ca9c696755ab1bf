package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The envelope's JSON field names are an external contract consumed by
// chat frontends; renaming them is a breaking change.
func TestResponseEnvelope_JSONFieldNames(t *testing.T) {
	env := ResponseEnvelope{
		ID:                    "abc",
		Answer:                "hello",
		Sources:               []string{"Handbook"},
		Tier:                  TierCautious,
		EscalationRecommended: true,
		EscalationText:        "contact us",
		EscalationLink:        "https://example.edu",
		Confidence:            ConfidenceMedium,
		Timestamp:             time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(env)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))

	for _, key := range []string{
		"id", "answer", "sources", "tier",
		"escalation_recommended", "escalation_text", "escalation_link",
		"confidence", "timestamp",
	} {
		assert.Contains(t, fields, key)
	}
	assert.Equal(t, float64(TierCautious), fields["tier"])
	assert.Equal(t, "medium", fields["confidence"])
}
