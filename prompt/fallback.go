package prompt

import "github.com/BaSui01/promptflow/types"

// Fallback is a caller-supplied template used when no cache entry exists and
// every fetch path has failed. The shape is an explicit tagged union built
// through TextFallback or ChatFallback, never inferred from a runtime value.
type Fallback struct {
	template types.Template
}

// TextFallback wraps a raw string as a flat-text fallback template.
func TextFallback(content string) *Fallback {
	return &Fallback{template: types.NewTextTemplate(content)}
}

// ChatFallback wraps an ordered message list as a chat fallback template.
func ChatFallback(messages []types.PromptMessage) *Fallback {
	return &Fallback{template: types.NewChatTemplate(messages)}
}

// record materializes the fallback as a degraded prompt record for the given
// name. Version 0 marks it as not originating from the store.
func (f *Fallback) record(name string) *Record {
	return &Record{
		Name:     name,
		Template: f.template,
	}
}
