package llm

import (
	"context"
)

// Client is the single capability the mitigation planner needs from a model
// provider.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
