package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocument_Valid(t *testing.T) {
	assert.True(t, Document{Title: "T", Content: "C"}.Valid())
	assert.False(t, Document{Title: "", Content: "C"}.Valid())
	assert.False(t, Document{Title: "T", Content: ""}.Valid())
}

func TestDocument_FullText(t *testing.T) {
	doc := Document{Title: "Attendance", Content: "Attend classes."}

	assert.Equal(t, "Attendance: Attend classes.", doc.FullText())
}
