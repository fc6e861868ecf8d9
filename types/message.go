// Package types provides core types used across the promptflow SDK.
// This package has ZERO dependencies on other promptflow packages to avoid circular imports.
// All other packages should import types from here.
package types

// Role represents the role of a message participant.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// MessageTypePlaceholder marks a chat-template entry that is not literal
// content but a named splice point for an externally supplied message list
// (typically conversation history) injected at compile time.
const MessageTypePlaceholder = "placeholder"

// PromptMessage represents one entry of a chat prompt template.
//
// A message with Type == MessageTypePlaceholder and a non-empty Name is not
// rendered; the compiler replaces it with the messages found under that name
// in the variable bag, or drops it when none are supplied.
type PromptMessage struct {
	Role       Role   `json:"role,omitempty"`
	Content    string `json:"content,omitempty"`
	Name       string `json:"name,omitempty"`
	ToolCallID string `json:"tool_call_id,omitempty"`
	Type       string `json:"type,omitempty"`
}

// IsPlaceholder reports whether the message is a history splice point.
func (m PromptMessage) IsPlaceholder() bool {
	return m.Type == MessageTypePlaceholder && m.Name != ""
}

// NewMessage creates a new message with the given role and content.
func NewMessage(role Role, content string) PromptMessage {
	return PromptMessage{Role: role, Content: content}
}

// NewSystemMessage creates a new system message.
func NewSystemMessage(content string) PromptMessage {
	return NewMessage(RoleSystem, content)
}

// NewUserMessage creates a new user message.
func NewUserMessage(content string) PromptMessage {
	return NewMessage(RoleUser, content)
}

// NewAssistantMessage creates a new assistant message.
func NewAssistantMessage(content string) PromptMessage {
	return NewMessage(RoleAssistant, content)
}

// NewPlaceholderMessage creates a splice-point message for the named
// history variable.
func NewPlaceholderMessage(name string) PromptMessage {
	return PromptMessage{Type: MessageTypePlaceholder, Name: name}
}
