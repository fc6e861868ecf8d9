package types

// Dialect identifies the templating syntax a prompt's content uses.
type Dialect string

const (
	// DialectAuto means "detect from content".
	DialectAuto Dialect = "auto"
	// DialectSimple is plain {{name}} substitution.
	DialectSimple Dialect = "simple"
	// DialectMustache is Mustache syntax with sections ({{#x}}, {{^x}}, {{>x}}).
	DialectMustache Dialect = "mustache"
	// DialectJinja2 is Jinja2 syntax with block tags, filters and dot paths.
	DialectJinja2 Dialect = "jinja2"
)

// Variables is the bag of values supplied at compile time. Values may be
// primitives, nil, nested maps, or ordered lists thereof. Supplied fresh on
// every compile call; never cached.
type Variables = map[string]any

// Template is a tagged union of a flat-text prompt and a chat prompt.
// Exactly one shape is active; the compiler dispatches on IsChat.
type Template struct {
	Content  string          `json:"content,omitempty"`
	Messages []PromptMessage `json:"messages,omitempty"`

	chat bool
}

// NewTextTemplate creates a flat-text template.
func NewTextTemplate(content string) Template {
	return Template{Content: content}
}

// NewChatTemplate creates a chat template from an ordered message list.
func NewChatTemplate(messages []PromptMessage) Template {
	return Template{Messages: messages, chat: true}
}

// IsChat reports whether the chat shape is active. A template constructed
// with NewChatTemplate stays chat-shaped even when its message list is empty.
func (t Template) IsChat() bool {
	return t.chat || len(t.Messages) > 0
}
