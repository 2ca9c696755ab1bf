package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wireTestPipeline points every configurable path at a temp directory,
// runs wirePipeline, and restores the package wiring state afterwards.
func wireTestPipeline(t *testing.T, encoderBaseURL string) {
	t.Helper()

	tmpDir := t.TempDir()
	kbPath := filepath.Join(tmpDir, "knowledge_base.md")
	kb := "## Attendance Policy\nSource: Academic Regs\nAttend your classes.\n"
	require.NoError(t, os.WriteFile(kbPath, []byte(kb), 0600))

	cfg := "[corpus]\npath = \"" + kbPath + "\"\n\n" +
		"[encoder]\ntype = \"ollama\"\nbase_url = \"" + encoderBaseURL + "\"\n\n" +
		"[llm]\ntype = \"ollama\"\nbase_url = \"" + encoderBaseURL + "\"\n\n" +
		"[cache]\ndir = \"" + filepath.Join(tmpDir, "cache") + "\"\n\n" +
		"[prompts]\ndir = \"" + filepath.Join(tmpDir, "prompts") + "\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(cfg), 0600))

	configDir = tmpDir
	t.Cleanup(func() {
		_ = closeAll()
		configDir = ""
		config = nil
		assistantService = nil
	})

	require.NoError(t, wirePipeline())
}

func TestWirePipeline_EncoderUnavailableStillServes(t *testing.T) {
	// Nothing listens on the discard port, so the encoder ping fails
	// and the index stays empty. Startup must still succeed.
	wireTestPipeline(t, "http://127.0.0.1:9")

	require.NotNil(t, assistantService)

	envelope, err := assistantService.Answer(context.Background(), "I am thinking about suicide")
	require.NoError(t, err)
	assert.True(t, envelope.EscalationRequired)
	assert.Contains(t, envelope.Answer, "999")
	assert.Contains(t, envelope.Answer, "Samaritans")
}

func TestWirePipeline_EncoderUnavailableRetrievalIsEmpty(t *testing.T) {
	wireTestPipeline(t, "http://127.0.0.1:9")

	contextText, sources, err := assistantService.Retrieve(context.Background(), "what is the attendance policy")

	require.NoError(t, err)
	assert.Empty(t, contextText)
	assert.Empty(t, sources)
}
