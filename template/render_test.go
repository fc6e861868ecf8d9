package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/promptflow/types"
)

func TestRenderSimple(t *testing.T) {
	tests := []struct {
		name    string
		content string
		vars    types.Variables
		want    string
	}{
		{
			name:    "basic substitution",
			content: "Hello {{name}}",
			vars:    types.Variables{"name": "World"},
			want:    "Hello World",
		},
		{
			name:    "unmatched token stays verbatim",
			content: "{{x}} and {{y}}",
			vars:    types.Variables{"x": "1"},
			want:    "1 and {{y}}",
		},
		{
			name:    "nil renders empty",
			content: "[{{gone}}]",
			vars:    types.Variables{"gone": nil},
			want:    "[]",
		},
		{
			name:    "map renders as JSON",
			content: "cfg={{cfg}}",
			vars:    types.Variables{"cfg": map[string]any{"k": "v"}},
			want:    `cfg={"k":"v"}`,
		},
		{
			name:    "list renders as JSON",
			content: "{{xs}}",
			vars:    types.Variables{"xs": []int{1, 2, 3}},
			want:    "[1,2,3]",
		},
		{
			name:    "number renders plainly",
			content: "n={{n}}",
			vars:    types.Variables{"n": 42},
			want:    "n=42",
		},
		{
			name:    "whitespace inside token",
			content: "Hello {{ name }}",
			vars:    types.Variables{"name": "World"},
			want:    "Hello World",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.content, tt.vars, types.DialectSimple)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderMustache(t *testing.T) {
	t.Run("sections iterate lists", func(t *testing.T) {
		got, err := Render("{{#items}}<{{name}}>{{/items}}", types.Variables{
			"items": []map[string]any{{"name": "a"}, {"name": "b"}},
		}, types.DialectMustache)
		require.NoError(t, err)
		assert.Equal(t, "<a><b>", got)
	})

	t.Run("html is not escaped", func(t *testing.T) {
		got, err := Render("{{text}}", types.Variables{"text": `<b>"x" & 'y'</b>`}, types.DialectMustache)
		require.NoError(t, err)
		assert.Equal(t, `<b>"x" & 'y'</b>`, got)
	})

	t.Run("missing variable renders empty", func(t *testing.T) {
		got, err := Render("a{{missing}}b", types.Variables{}, types.DialectMustache)
		require.NoError(t, err)
		assert.Equal(t, "ab", got)
	})

	t.Run("inverted section on absent value", func(t *testing.T) {
		got, err := Render("{{^items}}none{{/items}}", types.Variables{}, types.DialectMustache)
		require.NoError(t, err)
		assert.Equal(t, "none", got)
	})
}

func TestRenderJinja2(t *testing.T) {
	t.Run("dot path access", func(t *testing.T) {
		got, err := Render("Hi {{ user.name }}", types.Variables{
			"user": map[string]any{"name": "Ada"},
		}, types.DialectJinja2)
		require.NoError(t, err)
		assert.Equal(t, "Hi Ada", got)
	})

	t.Run("if block", func(t *testing.T) {
		got, err := Render("{% if premium %}pro{% endif %}", types.Variables{"premium": true}, types.DialectJinja2)
		require.NoError(t, err)
		assert.Equal(t, "pro", got)
	})

	t.Run("for loop", func(t *testing.T) {
		got, err := Render("{% for x in items %}{{ x }},{% endfor %}", types.Variables{
			"items": []string{"a", "b"},
		}, types.DialectJinja2)
		require.NoError(t, err)
		assert.Equal(t, "a,b,", got)
	})

	t.Run("filter with autoescape off", func(t *testing.T) {
		got, err := Render("{{ name|upper }} {{ html }}", types.Variables{
			"name": "ada",
			"html": "<i>x</i>",
		}, types.DialectJinja2)
		require.NoError(t, err)
		assert.Equal(t, "ADA <i>x</i>", got)
	})

	t.Run("includes are rejected", func(t *testing.T) {
		_, err := Render(`{% include "secrets.txt" %}`, types.Variables{}, types.DialectJinja2)
		require.Error(t, err)
	})

	t.Run("missing variable renders empty", func(t *testing.T) {
		got, err := Render("a{{ missing }}b", types.Variables{}, types.DialectJinja2)
		require.NoError(t, err)
		assert.Equal(t, "ab", got)
	})
}

func TestRenderUnknownDialect(t *testing.T) {
	_, err := Render("x", types.Variables{}, types.Dialect("erb"))
	assert.Error(t, err)
}
