package template

import (
	"fmt"
	"io"

	"github.com/flosch/pongo2/v6"

	"github.com/BaSui01/promptflow/types"
)

// denyLoader refuses every include/extends/import resolution. Template
// content originates from a remote, potentially multi-tenant prompt store
// and must not be able to read arbitrary files through include directives.
type denyLoader struct{}

func (denyLoader) Abs(base, name string) string { return name }

func (denyLoader) Get(path string) (io.Reader, error) {
	return nil, fmt.Errorf("template includes are disabled: %q", path)
}

// jinjaSet is the sandboxed template set shared by all renders. Pongo2
// template sets are safe for concurrent use.
var jinjaSet = pongo2.NewSet("promptflow", denyLoader{})

func init() {
	// Prompt output is not HTML; undefined variables render empty per
	// Jinja2 semantics, but entity-escaping rendered values would corrupt
	// prompt text.
	pongo2.SetAutoescape(false)
}

// renderJinja2 renders Jinja2 content with autoescaping off and no
// filesystem access.
func renderJinja2(content string, vars types.Variables) (string, error) {
	tpl, err := jinjaSet.FromString(content)
	if err != nil {
		return "", fmt.Errorf("parse jinja2 template: %w", err)
	}
	out, err := tpl.Execute(pongo2.Context(vars))
	if err != nil {
		return "", fmt.Errorf("render jinja2 template: %w", err)
	}
	return out, nil
}
