// Package generation defines the boundary between the application core and
// external LLM completion providers, plus the prompt construction shared by
// every provider.
package generation

import "context"

// Generator turns a text prompt into generated HTML. Implementations wrap
// one completion provider and own its retry behavior; the returned text has
// code-fence artifacts already stripped.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
