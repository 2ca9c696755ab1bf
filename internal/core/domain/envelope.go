package domain

import "time"

// Confidence labels attached to a response envelope.
const (
	ConfidenceHigh        = "high"
	ConfidenceMedium      = "medium"
	ConfidenceLow         = "low"
	ConfidenceSystemError = "system_error"
)

// ResponseEnvelope is the shaped answer returned to the caller.
// It is created once per request by the response policy and is not
// persisted.
type ResponseEnvelope struct {
	// ID uniquely identifies the request that produced this envelope.
	ID string `json:"id"`

	// Answer is the final answer text, including any tier-mandated
	// disclaimer suffix.
	Answer string `json:"answer"`

	// Sources lists citation labels for the excerpts that grounded
	// the answer, in ranking order.
	Sources []string `json:"sources"`

	// Tier is the safeguard tier the query was classified into.
	Tier Tier `json:"tier"`

	// EscalationAvailable is set on normal-tier responses: human
	// contact is offered but not suggested.
	EscalationAvailable bool `json:"escalation_available"`

	// EscalationRecommended is set on cautious-tier responses.
	EscalationRecommended bool `json:"escalation_recommended"`

	// EscalationRequired is set on critical-tier responses, which are
	// pre-authored and bypass generation entirely.
	EscalationRequired bool `json:"escalation_required"`

	// EscalationText describes how to reach human support.
	EscalationText string `json:"escalation_text,omitempty"`

	// EscalationLink points at the human-support contact page.
	EscalationLink string `json:"escalation_link,omitempty"`

	// Confidence is one of the Confidence* labels.
	Confidence string `json:"confidence"`

	// Timestamp records when the envelope was produced.
	Timestamp time.Time `json:"timestamp"`
}
