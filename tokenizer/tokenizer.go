// Package tokenizer 提供编译后 Prompt 的 Token 计数，
// 支持 tiktoken 精确计数与 CJK 估算器，用于观测已编译模板的 Token 开销。
package tokenizer

import (
	"github.com/BaSui01/promptflow/types"
)

// Tokenizer 统一的 Token 计数接口。
type Tokenizer interface {
	// CountTokens 返回给定文本的 token 数。
	CountTokens(text string) (int, error)

	// Name 返回分词器名称。
	Name() string
}

// CountTemplate 统计一个已编译模板的 token 总数。
// 文本模板按内容计数；聊天模板逐条消息计数，
// 每条消息额外计入角色标记与分隔符的固定开销。
func CountTemplate(t Tokenizer, tpl types.Template) (int, error) {
	if !tpl.IsChat() {
		return t.CountTokens(tpl.Content)
	}

	total := 0
	for _, msg := range tpl.Messages {
		// 每条消息的开销: <|start|>role\n content<|end|>\n
		tokens, err := t.CountTokens(msg.Content)
		if err != nil {
			return 0, err
		}
		roleTokens, err := t.CountTokens(string(msg.Role))
		if err != nil {
			return 0, err
		}
		total += tokens + roleTokens + 4
	}
	total += 3 // conversation-end overhead
	return total, nil
}
