package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckQuery(t *testing.T) {
	assert.NoError(t, checkQuery("What is the attendance policy?"))
	assert.Error(t, checkQuery(""))
	assert.Error(t, checkQuery(strings.Repeat("x", 2001)))
}

func TestDocumentRequestValidation(t *testing.T) {
	valid := DocumentRequest{Title: "Library Hours", Content: "Open late.", Source: "Library"}
	assert.NoError(t, validate.Struct(valid))

	missingTitle := DocumentRequest{Content: "body"}
	assert.Error(t, validate.Struct(missingTitle))

	missingContent := DocumentRequest{Title: "T"}
	assert.Error(t, validate.Struct(missingContent))

	// Source is optional
	noSource := DocumentRequest{Title: "T", Content: "C"}
	assert.NoError(t, validate.Struct(noSource))
}
