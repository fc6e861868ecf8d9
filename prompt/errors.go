package prompt

import "errors"

// ErrorCode 分类 Prompt 获取路径上的失败。
type ErrorCode string

const (
	ErrNotFound     ErrorCode = "PROMPT_NOT_FOUND"     // 名称/版本/标签不存在
	ErrFetchFailed  ErrorCode = "PROMPT_FETCH_FAILED"  // 回源失败（网络/服务端错误）
	ErrUnavailable  ErrorCode = "PROMPT_UNAVAILABLE"   // 无缓存、无回源结果、无 fallback
	ErrInvalidReply ErrorCode = "PROMPT_INVALID_REPLY" // 服务端响应无法解析
)

// Error 是获取 Prompt 失败时返回给调用方的类型化错误。
type Error struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	HTTPStatus int       `json:"http_status,omitempty"`
	Retryable  bool      `json:"retryable"`
}

func (e *Error) Error() string { return e.Message }

// IsNotFound reports whether err is a typed not-found failure.
func IsNotFound(err error) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Code == ErrNotFound
}
