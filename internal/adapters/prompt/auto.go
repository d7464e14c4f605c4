package prompt

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/startquantum/internal/ports"
)

// AutoPrompter accepts every question without reading input.
// The question is still logged so unattended runs leave a record.
type AutoPrompter struct {
	logger ports.Logger
}

// NewAutoPrompter creates an AutoPrompter. logger may be nil.
func NewAutoPrompter(logger ports.Logger) *AutoPrompter {
	return &AutoPrompter{logger: logger}
}

// Confirm always returns true.
func (p *AutoPrompter) Confirm(ctx context.Context, question, _ string, _ bool) (bool, error) {
	if p.logger != nil {
		p.logger.Info(ctx, fmt.Sprintf("%s yes (--yes)", question))
	}
	return true, nil
}

// Ensure AutoPrompter implements ports.Prompter.
var _ ports.Prompter = (*AutoPrompter)(nil)
