package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkoukk/tiktoken-go"

	"github.com/custodia-labs/advisor-cli/internal/core/domain"
	"github.com/custodia-labs/advisor-cli/internal/core/ports/driven"
	"github.com/custodia-labs/advisor-cli/internal/logger"
)

// Ensure ResponsePolicy can receive a custom prompt store.
var _ driven.PromptStoreAware = (*ResponsePolicy)(nil)

// Escalation contact details shown on every non-normal response.
const (
	escalationLink = "https://www.london.edu/students/wellbeing"
	escalationText = "You can reach the Student Wellbeing Team at wellbeing@london.edu or +44 (0)20 7000 7000."
)

// cautiousDisclaimer is appended verbatim to every cautious-tier answer.
const cautiousDisclaimer = "Please note: for personal circumstances like these, " +
	"the Student Wellbeing Team can give you advice tailored to your situation. " +
	"You don't have to work through this alone."

// crisisAnswer is the pre-authored critical-tier response. It is fixed
// text: no generation, no retrieval.
const crisisAnswer = "It sounds like you may be going through something serious, " +
	"and I want to make sure you get the right support. I'm not able to help with " +
	"this, but people who can are available right now:\n\n" +
	"- If you are in immediate danger, call 999 (UK emergency services).\n" +
	"- Samaritans are available 24/7 on 116 123 (free to call).\n" +
	"- The Student Wellbeing Team can be reached at wellbeing@london.edu " +
	"or +44 (0)20 7000 7000 during office hours.\n\n" +
	"Please reach out to one of them - they are there to help."

// crisisSources names the services cited by the crisis response.
var crisisSources = []string{
	"Emergency Services: 999",
	"Samaritans: 116 123 (24/7)",
	"Student Wellbeing Team",
}

// capabilityPhrases mark queries asking what the assistant can do.
// When no context was retrieved for one of these, the generator is
// asked for a capability overview instead of an apology.
var capabilityPhrases = []string{
	"what can you help",
	"what can you tell me about",
	"what can you do",
	"what topics",
	"what information is available",
	"what do you know",
	"how can you help",
}

// defaultPrompts are the embedded prompt templates, used when no
// prompt store is configured or a named prompt cannot be loaded.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptSystem: `You are a helpful assistant for a university programme office. You answer student questions using only the provided policy excerpts. Cite the excerpt titles you relied on. If the excerpts do not answer the question, say so plainly and suggest contacting the programme office. Never invent policy details.`,

	driven.PromptComprehensive: `Answer the student's question comprehensively using the policy excerpts below. Structure the answer clearly and mention the relevant excerpt titles.

Excerpts:
%s

Question: %s

Answer:`,

	driven.PromptCautious: `The student's question touches on a sensitive personal situation. Provide basic factual information from the excerpts below, keep a warm and supportive tone, and recommend speaking to a human advisor for anything personal.

Excerpts:
%s

Question: %s

Answer:`,

	driven.PromptCapabilities: `Briefly describe what you can help with as a programme office assistant: academic policies, grading and classifications, attendance, plagiarism and academic integrity, Canvas and IT access, registration and fees, and wellbeing services. Invite the student to ask a specific question.`,

	driven.PromptNoContext: `No relevant policy excerpts were found for the question below. Apologise briefly, say that you don't have information on this topic, and redirect the student to the programme office for help.

Question: %s

Answer:`,
}

// ResponsePolicy combines the safeguard tier with retrieval output to
// shape the final response envelope. It is the single place where the
// external completion service is invoked, and the single place where
// its failure is converted into a user-visible answer.
type ResponsePolicy struct {
	llm     driven.LLMService
	prompts driven.PromptStore
}

// NewResponsePolicy creates a policy over the given completion
// service. The service may be nil; every generated answer then
// becomes the fixed fallback envelope.
func NewResponsePolicy(llm driven.LLMService) *ResponsePolicy {
	return &ResponsePolicy{llm: llm}
}

// SetPromptStore sets the prompt store for loading customisable
// prompts. If not set, the embedded defaults are used.
func (p *ResponsePolicy) SetPromptStore(store driven.PromptStore) {
	p.prompts = store
}

// Respond turns tier, context, and sources into the final envelope.
// Tier 3 is terminal: a pre-authored crisis envelope with no
// generation. Tiers 1 and 2 build a generation request; any failure
// from the completion service is caught here and replaced with the
// fixed fallback envelope.
func (p *ResponsePolicy) Respond(
	ctx context.Context, query, contextText string, sources []string, analysis domain.QueryAnalysis,
) *domain.ResponseEnvelope {
	logger.Section("Response Shaping")
	logger.Debug("Tier %d, type %s, context %d chars, %d sources",
		analysis.Tier, analysis.Type, len(contextText), len(sources))

	if analysis.Tier == domain.TierCritical {
		return p.criticalEnvelope()
	}

	system, prompt := p.BuildRequest(analysis, contextText, query)
	logger.Debug("Prompt tokens: %d", promptTokens(system+prompt))

	answer, err := p.generate(ctx, system, prompt)
	if err != nil {
		logger.Warn("Generation failed: %v", err)
		return p.fallbackEnvelope(query, analysis.Tier)
	}

	if analysis.Tier == domain.TierCautious {
		return p.cautiousEnvelope(answer, sources)
	}
	return p.normalEnvelope(answer, sources, contextText != "")
}

// BuildRequest composes the generation request for tiers 1 and 2:
// the fixed system instruction plus the per-tier user message. When
// no context was retrieved, the request is rephrased into either a
// capability overview (for "what can you help with"-style queries) or
// an apology-plus-redirect.
func (p *ResponsePolicy) BuildRequest(analysis domain.QueryAnalysis, contextText, query string) (system, prompt string) {
	system = p.prompt(driven.PromptSystem)

	if contextText == "" {
		if isCapabilityQuery(analysis.CleanedQuery) {
			return system, p.prompt(driven.PromptCapabilities)
		}
		return system, fmt.Sprintf(p.prompt(driven.PromptNoContext), query)
	}

	template := driven.PromptComprehensive
	if analysis.Tier == domain.TierCautious {
		template = driven.PromptCautious
	}
	return system, fmt.Sprintf(p.prompt(template), contextText, query)
}

// generate calls the completion service once. No retries: a failed
// call is converted by the caller into the fallback envelope.
func (p *ResponsePolicy) generate(ctx context.Context, system, prompt string) (string, error) {
	if p.llm == nil {
		return "", domain.ErrGenerationFailed
	}
	answer, err := p.llm.Generate(ctx, system, prompt, driven.GenerateOptions{
		MaxTokens:   800,
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}
	return strings.TrimSpace(answer), nil
}

func (p *ResponsePolicy) criticalEnvelope() *domain.ResponseEnvelope {
	env := newEnvelope(domain.TierCritical, crisisAnswer, crisisSources, domain.ConfidenceHigh)
	env.EscalationRequired = true
	env.EscalationText = escalationText
	env.EscalationLink = escalationLink
	return env
}

func (p *ResponsePolicy) cautiousEnvelope(answer string, sources []string) *domain.ResponseEnvelope {
	env := newEnvelope(domain.TierCautious, answer+"\n\n"+cautiousDisclaimer, sources, domain.ConfidenceMedium)
	env.EscalationRecommended = true
	env.EscalationText = escalationText
	env.EscalationLink = escalationLink
	return env
}

func (p *ResponsePolicy) normalEnvelope(answer string, sources []string, hadContext bool) *domain.ResponseEnvelope {
	confidence := domain.ConfidenceHigh
	if !hadContext {
		confidence = domain.ConfidenceLow
	}
	env := newEnvelope(domain.TierNormal, answer, sources, confidence)
	env.EscalationAvailable = true
	env.EscalationLink = escalationLink
	return env
}

// fallbackEnvelope is the single universal fallback for the external
// completion dependency. It names the original query and always
// carries the escalation link.
func (p *ResponsePolicy) fallbackEnvelope(query string, tier domain.Tier) *domain.ResponseEnvelope {
	answer := fmt.Sprintf("I'm sorry - I wasn't able to generate an answer for %q right now. "+
		"Please try again in a moment, or contact the programme office directly.", query)
	env := newEnvelope(tier, answer, nil, domain.ConfidenceSystemError)
	env.EscalationAvailable = true
	env.EscalationText = escalationText
	env.EscalationLink = escalationLink
	return env
}

// prompt loads a named template from the store, falling back to the
// embedded default.
func (p *ResponsePolicy) prompt(name string) string {
	if p.prompts != nil {
		if tmpl, err := p.prompts.Load(name); err == nil && tmpl != "" {
			return tmpl
		}
	}
	return defaultPrompts[name]
}

// isCapabilityQuery reports whether the cleaned query asks what the
// assistant can do.
func isCapabilityQuery(cleaned string) bool {
	for _, phrase := range capabilityPhrases {
		if strings.Contains(cleaned, phrase) {
			return true
		}
	}
	return false
}

// newEnvelope creates an envelope with the shared request metadata.
func newEnvelope(tier domain.Tier, answer string, sources []string, confidence string) *domain.ResponseEnvelope {
	return &domain.ResponseEnvelope{
		ID:         uuid.NewString(),
		Answer:     answer,
		Sources:    sources,
		Tier:       tier,
		Confidence: confidence,
		Timestamp:  time.Now().UTC(),
	}
}

// promptTokens counts prompt tokens for observability. Counting is
// approximate (gpt-3.5 encoding) and only runs in verbose mode.
func promptTokens(text string) int {
	if !logger.IsVerbose() {
		return 0
	}
	enc, err := tiktoken.EncodingForModel("gpt-3.5-turbo")
	if err != nil {
		return -1
	}
	return len(enc.Encode(text, nil, nil))
}
