package template

import (
	"fmt"

	"github.com/cbroglie/mustache"

	"github.com/BaSui01/promptflow/types"
)

// renderMustache renders Mustache content with HTML escaping disabled.
// Prompt output is plain text or JSON, not HTML, so the engine's default
// escaping must be suppressed (RenderRaw treats every tag as {{{raw}}}).
// Missing variables render as the empty string per Mustache semantics.
func renderMustache(content string, vars types.Variables) (string, error) {
	out, err := mustache.RenderRaw(content, true, map[string]any(vars))
	if err != nil {
		return "", fmt.Errorf("render mustache template: %w", err)
	}
	return out, nil
}
