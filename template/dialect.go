package template

import (
	"regexp"

	"github.com/BaSui01/promptflow/types"
)

// Jinja2 markers. Block tags ({% if %}, {% for %}, ...), filter pipes and
// dot-notation access are all unambiguous: Mustache has none of them.
var (
	jinjaBlockPattern  = regexp.MustCompile(`\{%.+?%\}`)
	jinjaFilterPattern = regexp.MustCompile(`\{\{\s*[\w.]+\s*\|`)
	jinjaDotPattern    = regexp.MustCompile(`\{\{\s*\w+\.\w+`)
)

// Mustache section markers: {{#x}}, {{^x}}, {{>x}}.
var mustacheSectionPattern = regexp.MustCompile(`\{\{\s*[#^>]`)

// DetectDialect classifies a template string into simple, mustache or jinja2.
//
// Jinja2 markers are checked before Mustache ones: Jinja2's dot notation and
// filter syntax would otherwise be mis-detected as plain Mustache variables.
// Content with no dialect-specific markers is simple.
func DetectDialect(content string) types.Dialect {
	if jinjaBlockPattern.MatchString(content) ||
		jinjaFilterPattern.MatchString(content) ||
		jinjaDotPattern.MatchString(content) {
		return types.DialectJinja2
	}
	if mustacheSectionPattern.MatchString(content) {
		return types.DialectMustache
	}
	return types.DialectSimple
}

// DetectTemplateDialect resolves a single dialect for the whole template.
//
// For chat templates, messages are scanned in array order and the first
// non-simple dialect wins; if every message is simple, the template is
// simple. The result applies uniformly to every message during compilation.
// Placeholder messages carry no literal content and are skipped.
func DetectTemplateDialect(tpl types.Template) types.Dialect {
	if !tpl.IsChat() {
		return DetectDialect(tpl.Content)
	}
	for _, msg := range tpl.Messages {
		if msg.IsPlaceholder() {
			continue
		}
		if d := DetectDialect(msg.Content); d != types.DialectSimple {
			return d
		}
	}
	return types.DialectSimple
}

// resolveDialect maps auto to the detected dialect and passes explicit
// dialects through unchanged.
func resolveDialect(tpl types.Template, dialect types.Dialect) types.Dialect {
	if dialect == types.DialectAuto || dialect == "" {
		return DetectTemplateDialect(tpl)
	}
	return dialect
}
