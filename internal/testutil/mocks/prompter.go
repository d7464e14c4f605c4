package mocks

import (
	"context"
	"errors"
	"sync"

	"github.com/felixgeelhaar/startquantum/internal/ports"
)

// ErrNoAnswer is returned when a Prompter runs out of scripted answers
// and has no fallback.
var ErrNoAnswer = errors.New("no scripted answer")

// PromptCall records one confirmation request.
type PromptCall struct {
	Question   string
	Detail     string
	DefaultYes bool
}

// Prompter is a scripted test double for ports.Prompter.
type Prompter struct {
	mu       sync.Mutex
	answers  []bool
	fallback *bool
	err      error
	calls    []PromptCall
}

// NewPrompter creates a Prompter that returns answers in order.
func NewPrompter(answers ...bool) *Prompter {
	return &Prompter{answers: answers}
}

// AlwaysYes creates a Prompter that confirms every question.
func AlwaysYes() *Prompter {
	yes := true
	return &Prompter{fallback: &yes}
}

// AlwaysNo creates a Prompter that declines every question.
func AlwaysNo() *Prompter {
	no := false
	return &Prompter{fallback: &no}
}

// WithError makes every Confirm fail with err.
func (p *Prompter) WithError(err error) *Prompter {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
	return p
}

// Confirm returns the next scripted answer.
func (p *Prompter) Confirm(_ context.Context, question, detail string, defaultYes bool) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.calls = append(p.calls, PromptCall{Question: question, Detail: detail, DefaultYes: defaultYes})

	if p.err != nil {
		return false, p.err
	}
	if len(p.answers) > 0 {
		answer := p.answers[0]
		p.answers = p.answers[1:]
		return answer, nil
	}
	if p.fallback != nil {
		return *p.fallback, nil
	}
	return false, ErrNoAnswer
}

// Calls returns all recorded prompts.
func (p *Prompter) Calls() []PromptCall {
	p.mu.Lock()
	defer p.mu.Unlock()
	calls := make([]PromptCall, len(p.calls))
	copy(calls, p.calls)
	return calls
}

// Ensure Prompter implements ports.Prompter.
var _ ports.Prompter = (*Prompter)(nil)
