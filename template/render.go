package template

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"

	"github.com/BaSui01/promptflow/types"
)

// Render renders one content string through the given dialect's renderer.
// The dialect must already be resolved; auto is treated per content string.
//
// Renderers are pure: the same (content, dialect, variables) input always
// produces the same output, with no shared state.
func Render(content string, vars types.Variables, dialect types.Dialect) (string, error) {
	if dialect == types.DialectAuto || dialect == "" {
		dialect = DetectDialect(content)
	}
	switch dialect {
	case types.DialectMustache:
		return renderMustache(content, vars)
	case types.DialectJinja2:
		return renderJinja2(content, vars)
	case types.DialectSimple:
		return renderSimple(content, vars), nil
	default:
		return "", fmt.Errorf("unknown template dialect: %q", dialect)
	}
}

var simpleTokenPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z_][a-zA-Z0-9_]*)\s*\}\}`)

// renderSimple substitutes {{name}} tokens from the variable bag. An
// unmatched token is left verbatim in the output rather than removed, so a
// partially supplied variable set can be compiled again later as more values
// become available. Nil values render as the empty string; maps and slices
// render as their JSON serialization.
func renderSimple(content string, vars types.Variables) string {
	return simpleTokenPattern.ReplaceAllStringFunc(content, func(token string) string {
		name := simpleTokenPattern.FindStringSubmatch(token)[1]
		value, ok := vars[name]
		if !ok {
			return token
		}
		return stringifyValue(value)
	})
}

// stringifyValue converts a variable value to its substitution text.
func stringifyValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	}
	switch reflect.ValueOf(value).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct, reflect.Pointer:
		data, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(data)
	default:
		return fmt.Sprintf("%v", value)
	}
}
