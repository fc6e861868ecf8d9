// =============================================================================
// 📦 PromptFlow 配置加载器
// =============================================================================
// 统一配置加载，支持 YAML 文件 + 环境变量覆盖
//
// 使用方法:
//
//	cfg, err := config.NewLoader().
//	    WithConfigPath("promptflow.yaml").
//	    WithEnvPrefix("PROMPTFLOW").
//	    Load()
//
// 配置优先级: 默认值 → YAML 文件 → 环境变量
// =============================================================================
package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// 🎯 核心配置结构
// =============================================================================

// Config SDK 客户端配置。
type Config struct {
	Store StoreConfig `yaml:"store" env:"STORE"`
	Cache CacheConfig `yaml:"cache" env:"CACHE"`
}

// StoreConfig Prompt 存储端配置。
type StoreConfig struct {
	// Endpoint Prompt 存储的基础 URL。
	Endpoint string `yaml:"endpoint" env:"ENDPOINT"`
	// APIKey 鉴权密钥。
	APIKey string `yaml:"api_key" env:"API_KEY"`
	// Timeout 单次拉取超时。
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT"`
}

// CacheConfig 本地缓存配置。
type CacheConfig struct {
	// Capacity 最大条目数，≤ 0 禁用缓存。
	Capacity int `yaml:"capacity" env:"CAPACITY"`
	// TTL 默认缓存时长。
	TTL time.Duration `yaml:"ttl" env:"TTL"`
	// StaleGracePeriod SWR 宽限期，0 关闭 SWR。
	StaleGracePeriod time.Duration `yaml:"stale_grace_period" env:"STALE_GRACE_PERIOD"`
	// RefreshTimeout 后台刷新超时。
	RefreshTimeout time.Duration `yaml:"refresh_timeout" env:"REFRESH_TIMEOUT"`
}

// Default 返回默认配置。
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Timeout: 10 * time.Second,
		},
		Cache: CacheConfig{
			Capacity:         100,
			TTL:              60 * time.Second,
			StaleGracePeriod: 30 * time.Second,
			RefreshTimeout:   10 * time.Second,
		},
	}
}

// =============================================================================
// 🔧 加载器
// =============================================================================

// Loader 配置加载器。
type Loader struct {
	configPath string
	envPrefix  string
}

// NewLoader 创建加载器。
func NewLoader() *Loader {
	return &Loader{envPrefix: "PROMPTFLOW"}
}

// WithConfigPath 指定 YAML 配置文件路径。
func (l *Loader) WithConfigPath(path string) *Loader {
	l.configPath = path
	return l
}

// WithEnvPrefix 指定环境变量前缀。
func (l *Loader) WithEnvPrefix(prefix string) *Loader {
	l.envPrefix = prefix
	return l
}

// Load 按 默认值 → YAML → 环境变量 的优先级加载配置。
func (l *Loader) Load() (*Config, error) {
	cfg := Default()

	if l.configPath != "" {
		data, err := os.ReadFile(l.configPath)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := setFieldsFromEnv(reflect.ValueOf(cfg).Elem(), l.envPrefix); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setFieldsFromEnv 递归设置结构体字段。
func setFieldsFromEnv(v reflect.Value, prefix string) error {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		envTag := fieldType.Tag.Get("env")
		if envTag == "" || envTag == "-" {
			continue
		}
		envKey := prefix + "_" + envTag

		if field.Kind() == reflect.Struct {
			if err := setFieldsFromEnv(field, envKey); err != nil {
				return err
			}
			continue
		}

		envValue := os.Getenv(envKey)
		if envValue == "" {
			continue
		}
		if err := setFieldValue(field, envValue); err != nil {
			return fmt.Errorf("failed to set %s: %w", envKey, err)
		}
	}
	return nil
}

// setFieldValue 设置字段值。
func setFieldValue(field reflect.Value, value string) error {
	if !field.CanSet() {
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		// 特殊处理 time.Duration
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			d, err := time.ParseDuration(value)
			if err != nil {
				return err
			}
			field.SetInt(int64(d))
		} else {
			i, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return err
			}
			field.SetInt(i)
		}

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported config field kind: %s", field.Kind())
	}
	return nil
}
