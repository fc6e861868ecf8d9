package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/promptflow/types"
)

func TestCompileTextTemplate(t *testing.T) {
	t.Run("renders content", func(t *testing.T) {
		got, err := CompileTextTemplate(
			types.NewTextTemplate("Hello {{name}}"),
			types.Variables{"name": "World"},
			types.DialectAuto,
		)
		require.NoError(t, err)
		assert.Equal(t, "Hello World", got)
	})

	t.Run("missing variable is preserved verbatim", func(t *testing.T) {
		got, err := CompileTextTemplate(
			types.NewTextTemplate("{{x}}"),
			types.Variables{},
			types.DialectAuto,
		)
		require.NoError(t, err)
		assert.Equal(t, "{{x}}", got)
	})
}

func TestCompileChatTemplate_PlaceholderInjection(t *testing.T) {
	tpl := types.NewChatTemplate([]types.PromptMessage{
		types.NewSystemMessage("Sys"),
		types.NewPlaceholderMessage("history"),
	})

	t.Run("history list is spliced in place", func(t *testing.T) {
		got, err := CompileChatTemplate(tpl, types.Variables{
			"history": []map[string]any{{"role": "user", "content": "Hi"}},
		}, types.DialectAuto)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, types.PromptMessage{Role: types.RoleSystem, Content: "Sys"}, got[0])
		assert.Equal(t, types.PromptMessage{Role: types.RoleUser, Content: "Hi"}, got[1])
	})

	t.Run("absent history silently omits the placeholder", func(t *testing.T) {
		got, err := CompileChatTemplate(tpl, types.Variables{}, types.DialectAuto)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Sys", got[0].Content)
	})

	t.Run("malformed history silently omits the placeholder", func(t *testing.T) {
		got, err := CompileChatTemplate(tpl, types.Variables{"history": "not a list"}, types.DialectAuto)
		require.NoError(t, err)
		require.Len(t, got, 1)
	})

	t.Run("typed messages carry name and tool_call_id through", func(t *testing.T) {
		got, err := CompileChatTemplate(tpl, types.Variables{
			"history": []types.PromptMessage{
				{Role: types.RoleTool, Content: "42", Name: "calc", ToolCallID: "call_1"},
			},
		}, types.DialectAuto)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "calc", got[1].Name)
		assert.Equal(t, "call_1", got[1].ToolCallID)
	})

	t.Run("map entries carry optional fields through", func(t *testing.T) {
		got, err := CompileChatTemplate(tpl, types.Variables{
			"history": []any{
				map[string]any{"role": "tool", "content": "42", "tool_call_id": "call_2"},
			},
		}, types.DialectAuto)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "call_2", got[1].ToolCallID)
	})
}

func TestCompileChatTemplate_OneDialectForAllMessages(t *testing.T) {
	// The second message makes the whole template jinja2; the first must be
	// rendered through the same dialect.
	tpl := types.NewChatTemplate([]types.PromptMessage{
		types.NewSystemMessage("Hi {{ name }}"),
		types.NewUserMessage("{% if x %}y{% endif %}"),
	})
	got, err := CompileChatTemplate(tpl, types.Variables{"name": "Ada", "x": true}, types.DialectAuto)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Hi Ada", got[0].Content)
	assert.Equal(t, "y", got[1].Content)
}

func TestCompileTemplate_PreservesShape(t *testing.T) {
	t.Run("text in, text out", func(t *testing.T) {
		out, err := CompileTemplate(types.NewTextTemplate("Hello {{name}}"), types.Variables{"name": "W"}, types.DialectAuto)
		require.NoError(t, err)
		assert.False(t, out.IsChat())
		assert.Equal(t, "Hello W", out.Content)
	})

	t.Run("chat in, chat out", func(t *testing.T) {
		out, err := CompileTemplate(types.NewChatTemplate([]types.PromptMessage{
			types.NewUserMessage("Hi {{name}}"),
		}), types.Variables{"name": "W"}, types.DialectAuto)
		require.NoError(t, err)
		assert.True(t, out.IsChat())
		require.Len(t, out.Messages, 1)
		assert.Equal(t, "Hi W", out.Messages[0].Content)
	})
}

func TestValidateVariables(t *testing.T) {
	tpl := types.NewTextTemplate("{{a}} {{b}} {{c}}")

	t.Run("reports missing names", func(t *testing.T) {
		res := ValidateVariables(tpl, types.Variables{"a": 1}, types.DialectSimple)
		assert.False(t, res.IsValid)
		assert.Equal(t, []string{"b", "c"}, res.Missing)
	})

	t.Run("all supplied", func(t *testing.T) {
		res := ValidateVariables(tpl, types.Variables{"a": 1, "b": 2, "c": nil}, types.DialectSimple)
		assert.True(t, res.IsValid)
		assert.Empty(t, res.Missing)
	})
}
