package cache

import "fmt"

// KeyOptions 选择 Prompt 的版本或标签。两者同时给出时版本优先。
type KeyOptions struct {
	// Version Prompt 版本号，≤ 0 表示未指定。
	Version int
	// Label Prompt 标签（如 "production"）。
	Label string
}

// GenerateKey 生成稳定格式的缓存键：
//
//	prompt:{name}:v{n}     指定版本
//	prompt:{name}:{label}  指定标签
//	prompt:{name}:latest   两者都未指定
//
// 该格式是对外契约，不能在无迁移说明的情况下变更。
func GenerateKey(name string, opts KeyOptions) string {
	switch {
	case opts.Version > 0:
		return fmt.Sprintf("prompt:%s:v%d", name, opts.Version)
	case opts.Label != "":
		return fmt.Sprintf("prompt:%s:%s", name, opts.Label)
	default:
		return fmt.Sprintf("prompt:%s:latest", name)
	}
}

func keyPrefix(name string) string {
	return "prompt:" + name + ":"
}
