package ports

import "context"

// Prompter asks the operator yes/no questions.
type Prompter interface {
	// Confirm shows question and optional detail and blocks for an answer.
	// An empty answer selects defaultYes.
	Confirm(ctx context.Context, question, detail string, defaultYes bool) (bool, error)
}
