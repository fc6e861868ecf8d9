package template

import "github.com/BaSui01/promptflow/types"

// ValidationResult reports which referenced variables the caller did not
// supply.
type ValidationResult struct {
	Missing []string `json:"missing"`
	IsValid bool     `json:"is_valid"`
}

// ValidateVariables compares the variables a template references against the
// keys present in the bag.
//
// The check is advisory only: compilation never requires it to pass. A
// simple-dialect template leaves unmatched tokens verbatim, Mustache and
// Jinja2 render missing values per their own undefined semantics. Strict
// enforcement is a policy decision for the layer above.
func ValidateVariables(tpl types.Template, vars types.Variables, dialect types.Dialect) ValidationResult {
	required := ExtractVariables(tpl, dialect)

	missing := make([]string, 0)
	for _, name := range required {
		if _, ok := vars[name]; !ok {
			missing = append(missing, name)
		}
	}
	return ValidationResult{Missing: missing, IsValid: len(missing) == 0}
}
