package prompt

import (
	"github.com/BaSui01/promptflow/template"
	"github.com/BaSui01/promptflow/types"
)

// Record is a stored prompt definition plus its store metadata, as returned
// by a Fetcher and held in the cache.
type Record struct {
	Name     string         `json:"name"`
	Version  int            `json:"version"`
	Labels   []string       `json:"labels,omitempty"`
	Dialect  types.Dialect  `json:"dialect,omitempty"`
	Template types.Template `json:"template"`
	Config   map[string]any `json:"config,omitempty"`
}

// Compile renders the record's template against the variable bag. The stored
// dialect is used when declared, otherwise it is detected from content.
func (r *Record) Compile(vars types.Variables) (types.Template, error) {
	dialect := r.Dialect
	if dialect == "" {
		dialect = types.DialectAuto
	}
	return template.CompileTemplate(r.Template, vars, dialect)
}

// Variables returns the ordered unique variable names the record's template
// references.
func (r *Record) Variables() []string {
	dialect := r.Dialect
	if dialect == "" {
		dialect = types.DialectAuto
	}
	return template.ExtractVariables(r.Template, dialect)
}

// Validate reports which referenced variables the bag does not supply.
// Advisory only; Compile never requires it to pass.
func (r *Record) Validate(vars types.Variables) template.ValidationResult {
	dialect := r.Dialect
	if dialect == "" {
		dialect = types.DialectAuto
	}
	return template.ValidateVariables(r.Template, vars, dialect)
}
