package cli

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance; it caches struct
// metadata, so one instance serves the whole package.
var validate = validator.New()

// QueryRequest is the validated shape of a question entering the
// pipeline from any command.
type QueryRequest struct {
	Query string `validate:"required,min=1,max=2000"`
}

// checkQuery validates the raw question before it reaches the core.
func checkQuery(query string) error {
	if err := validate.Struct(QueryRequest{Query: query}); err != nil {
		return fmt.Errorf("invalid question: %w", err)
	}
	return nil
}

// DocumentRequest is the validated shape of an administrative
// document addition.
type DocumentRequest struct {
	Title   string `validate:"required,min=1,max=200"`
	Content string `validate:"required,min=1"`
	Source  string `validate:"max=200"`
}
