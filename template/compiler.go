package template

import (
	"fmt"

	"github.com/BaSui01/promptflow/types"
)

// CompileTemplate renders a template against the variable bag and returns a
// template of the same shape. Dialect auto resolves once for the whole
// template; the resolved dialect applies uniformly to every chat message.
func CompileTemplate(tpl types.Template, vars types.Variables, dialect types.Dialect) (types.Template, error) {
	if tpl.IsChat() {
		messages, err := CompileChatTemplate(tpl, vars, dialect)
		if err != nil {
			return types.Template{}, err
		}
		return types.NewChatTemplate(messages), nil
	}
	content, err := CompileTextTemplate(tpl, vars, dialect)
	if err != nil {
		return types.Template{}, err
	}
	return types.NewTextTemplate(content), nil
}

// CompileTextTemplate renders a flat-text template's content string.
func CompileTextTemplate(tpl types.Template, vars types.Variables, dialect types.Dialect) (string, error) {
	return Render(tpl.Content, vars, resolveDialect(tpl, dialect))
}

// CompileChatTemplate renders every message of a chat template.
//
// A placeholder message is replaced by the messages found under its name in
// the variable bag: when the value is an ordered list of objects each
// carrying role and content, each object is spliced into the output sequence
// as its own message, with optional name and tool_call_id carried through.
// A missing or malformed history variable silently omits the placeholder, so
// conversation-history injection stays optional for callers.
func CompileChatTemplate(tpl types.Template, vars types.Variables, dialect types.Dialect) ([]types.PromptMessage, error) {
	resolved := resolveDialect(tpl, dialect)

	compiled := make([]types.PromptMessage, 0, len(tpl.Messages))
	for i, msg := range tpl.Messages {
		if msg.IsPlaceholder() {
			history, ok := historyMessages(vars[msg.Name])
			if !ok {
				continue
			}
			compiled = append(compiled, history...)
			continue
		}

		content, err := Render(msg.Content, vars, resolved)
		if err != nil {
			return nil, fmt.Errorf("compile chat message %d: %w", i, err)
		}
		compiled = append(compiled, types.PromptMessage{
			Role:       msg.Role,
			Content:    content,
			Name:       msg.Name,
			ToolCallID: msg.ToolCallID,
		})
	}
	return compiled, nil
}

// historyMessages coerces a history variable into a message list. The value
// must be an ordered list whose elements each carry a role and a content;
// both typed messages and decoded-JSON maps are accepted. Anything else
// reports false and the placeholder is dropped.
func historyMessages(value any) ([]types.PromptMessage, bool) {
	switch list := value.(type) {
	case []types.PromptMessage:
		return list, true
	case []map[string]any:
		messages := make([]types.PromptMessage, 0, len(list))
		for _, item := range list {
			msg, ok := messageFromMap(item)
			if !ok {
				return nil, false
			}
			messages = append(messages, msg)
		}
		return messages, true
	case []any:
		messages := make([]types.PromptMessage, 0, len(list))
		for _, item := range list {
			switch entry := item.(type) {
			case types.PromptMessage:
				messages = append(messages, entry)
			case map[string]any:
				msg, ok := messageFromMap(entry)
				if !ok {
					return nil, false
				}
				messages = append(messages, msg)
			default:
				return nil, false
			}
		}
		return messages, true
	default:
		return nil, false
	}
}

func messageFromMap(item map[string]any) (types.PromptMessage, bool) {
	role, okRole := item["role"].(string)
	content, okContent := item["content"].(string)
	if !okRole || !okContent {
		return types.PromptMessage{}, false
	}
	msg := types.PromptMessage{Role: types.Role(role), Content: content}
	if name, ok := item["name"].(string); ok {
		msg.Name = name
	}
	if id, ok := item["tool_call_id"].(string); ok {
		msg.ToolCallID = id
	}
	return msg, true
}
