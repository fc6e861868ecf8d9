package template

import (
	"regexp"
	"sort"

	"github.com/BaSui01/promptflow/types"
)

// Per-dialect variable reference patterns. These are scanners over the
// idiomatic forms prompt authors write (single-level dot paths, a single
// trailing filter), not grammar parsers.
var (
	// {{name}} / {{ name }}
	simpleVarPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z_][a-zA-Z0-9_]*)\s*\}\}`)

	// {{name}}, {{#name}}, {{^name}}, {{/name}}; the prefix character is
	// ignored for identity, so {{#items}}...{{/items}} records "items" once.
	mustacheVarPattern = regexp.MustCompile(`\{\{\s*[#^/]?\s*([a-zA-Z_][a-zA-Z0-9_]*)(?:\.[a-zA-Z0-9_]+)*\s*\}\}`)

	// {{ path }} with optional dot segments and an optional trailing filter;
	// only the root segment is captured.
	jinjaVarPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z_][a-zA-Z0-9_]*)(?:\.[a-zA-Z0-9_]+)*\s*(?:\|\s*[a-zA-Z_][a-zA-Z0-9_]*(?:\([^)]*\))?\s*)?\}\}`)

	// {% for x in items %} records the iterable's root.
	jinjaForPattern = regexp.MustCompile(`\{%-?\s*for\s+[a-zA-Z_][a-zA-Z0-9_]*(?:\s*,\s*[a-zA-Z_][a-zA-Z0-9_]*)?\s+in\s+([a-zA-Z_][a-zA-Z0-9_]*)`)

	// {% if cond %} / {% elif cond %} record the condition's root.
	jinjaIfPattern = regexp.MustCompile(`\{%-?\s*(?:if|elif)\s+(?:not\s+)?([a-zA-Z_][a-zA-Z0-9_]*)`)
)

// ExtractVariables returns the deduplicated, order-preserving set of variable
// names the template references, resolved against the given dialect (auto
// detects first). For chat templates the result is the union across every
// message's content in array order; placeholder messages are skipped, their
// Name is a splice target, not a content variable.
//
// The scan is deterministic: the same (template, dialect) input always yields
// the same names in the same order.
func ExtractVariables(tpl types.Template, dialect types.Dialect) []string {
	resolved := resolveDialect(tpl, dialect)

	var names []string
	seen := make(map[string]struct{})
	record := func(vars []string) {
		for _, v := range vars {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			names = append(names, v)
		}
	}

	if !tpl.IsChat() {
		record(scanContent(tpl.Content, resolved))
		return names
	}
	for _, msg := range tpl.Messages {
		if msg.IsPlaceholder() {
			continue
		}
		record(scanContent(msg.Content, resolved))
	}
	return names
}

// scanContent returns every variable reference in one content string, in
// order of appearance, duplicates included.
func scanContent(content string, dialect types.Dialect) []string {
	switch dialect {
	case types.DialectMustache:
		return matchRoots(content, mustacheVarPattern)
	case types.DialectJinja2:
		return mergeByOffset(content, jinjaVarPattern, jinjaForPattern, jinjaIfPattern)
	default:
		return matchRoots(content, simpleVarPattern)
	}
}

func matchRoots(content string, pattern *regexp.Regexp) []string {
	matches := pattern.FindAllStringSubmatch(content, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}

// mergeByOffset runs several patterns over the same content and interleaves
// their captures by position, so extraction order follows document order even
// when references come from different syntactic forms.
func mergeByOffset(content string, patterns ...*regexp.Regexp) []string {
	type hit struct {
		offset int
		name   string
	}
	var hits []hit
	for _, p := range patterns {
		for _, idx := range p.FindAllStringSubmatchIndex(content, -1) {
			// idx[2]:idx[3] is the first capture group.
			if idx[2] < 0 {
				continue
			}
			hits = append(hits, hit{offset: idx[0], name: content[idx[2]:idx[3]]})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].offset < hits[j].offset })
	names := make([]string, 0, len(hits))
	for _, h := range hits {
		names = append(names, h.name)
	}
	return names
}
