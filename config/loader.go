// =============================================================================
// 📦 VoxBridge 配置加载器
// =============================================================================
// 统一配置加载，支持 YAML 文件 + .env 文件 + 环境变量覆盖
//
// 使用方法:
//
//	cfg, err := config.NewLoader().
//	    WithConfigPath("config.yaml").
//	    WithEnvFile(".env").
//	    WithEnvPrefix("VOXBRIDGE").
//	    Load()
//
// 配置优先级: 默认值 → YAML 文件 → 兼容环境变量 → 前缀环境变量
// 进程环境变量优先于 .env 文件中的同名变量。
// =============================================================================
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// 🎯 核心配置结构
// =============================================================================

// Config 是 VoxBridge 的完整配置结构。
// 启动时构建一次，之后只读。
type Config struct {
	// Server 服务器配置
	Server ServerConfig `yaml:"server" env:"SERVER"`

	// Translator 翻译服务凭证与端点
	Translator TranslatorConfig `yaml:"translator" env:"TRANSLATOR"`

	// Speech 语音合成服务凭证与端点
	Speech SpeechConfig `yaml:"speech" env:"SPEECH"`

	// Web 前端页面配置
	Web WebConfig `yaml:"web" env:"WEB"`

	// Log 日志配置
	Log LogConfig `yaml:"log" env:"LOG"`

	// Telemetry 遥测配置
	Telemetry TelemetryConfig `yaml:"telemetry" env:"TELEMETRY"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	// HTTP 端口
	HTTPPort int `yaml:"http_port" env:"HTTP_PORT"`
	// Metrics 端口，0 表示不启动
	MetricsPort int `yaml:"metrics_port" env:"METRICS_PORT"`
	// 读取超时
	ReadTimeout time.Duration `yaml:"read_timeout" env:"READ_TIMEOUT"`
	// 写入超时（需覆盖完整音频流）
	WriteTimeout time.Duration `yaml:"write_timeout" env:"WRITE_TIMEOUT"`
	// 空闲超时
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"IDLE_TIMEOUT"`
	// 优雅关闭超时
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
	// 请求体上限（字节）
	MaxBodyBytes int64 `yaml:"max_body_bytes" env:"MAX_BODY_BYTES"`
	// 允许的跨域来源
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins" env:"CORS_ALLOWED_ORIGINS"`
}

// TranslatorConfig 翻译服务配置
type TranslatorConfig struct {
	// IAM API Key，为空时翻译能力视为缺失
	APIKey string `yaml:"api_key" env:"API_KEY"`
	// 服务地址
	URL string `yaml:"url" env:"URL"`
	// IAM 令牌端点
	IAMURL string `yaml:"iam_url" env:"IAM_URL"`
	// API 版本日期
	Version string `yaml:"version" env:"VERSION"`
	// X-Watson-Technology-Preview 头
	TechnologyPreview string `yaml:"technology_preview" env:"TECHNOLOGY_PREVIEW"`
	// X-Watson-Learning-Opt-Out 头
	LearningOptOut bool `yaml:"learning_opt_out" env:"LEARNING_OPT_OUT"`
	// 请求超时
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT"`
}

// SpeechConfig 语音合成服务配置
type SpeechConfig struct {
	// 后端: watson, google
	Provider string `yaml:"provider" env:"PROVIDER"`
	// IAM API Key（watson）
	APIKey string `yaml:"api_key" env:"API_KEY"`
	// 服务地址（watson）
	URL string `yaml:"url" env:"URL"`
	// IAM 令牌端点（watson）
	IAMURL string `yaml:"iam_url" env:"IAM_URL"`
	// 服务账号凭证文件（google）
	GoogleCredentialsFile string `yaml:"google_credentials_file" env:"GOOGLE_CREDENTIALS_FILE"`
	// 非流式调用的超时；合成音频流不受此限制
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT"`
}

// WebConfig 前端页面配置
type WebConfig struct {
	// 静态资源目录，为空时使用内嵌资源
	StaticDir string `yaml:"static_dir" env:"STATIC_DIR"`
	// 错误信息语言: en, es
	Locale string `yaml:"locale" env:"LOCALE"`
	// 是否允许页面被 iframe 嵌入
	AllowEmbedding bool `yaml:"allow_embedding" env:"ALLOW_EMBEDDING"`
	// 页面标题
	Title string `yaml:"title" env:"TITLE"`
}

// LogConfig 日志配置
type LogConfig struct {
	// 日志级别: debug, info, warn, error
	Level string `yaml:"level" env:"LEVEL"`
	// 输出格式: json, console
	Format string `yaml:"format" env:"FORMAT"`
	// 输出路径
	OutputPaths []string `yaml:"output_paths" env:"OUTPUT_PATHS"`
	// 是否启用调用者信息
	EnableCaller bool `yaml:"enable_caller" env:"ENABLE_CALLER"`
	// 是否启用堆栈跟踪
	EnableStacktrace bool `yaml:"enable_stacktrace" env:"ENABLE_STACKTRACE"`
}

// TelemetryConfig 遥测配置
type TelemetryConfig struct {
	// 是否启用
	Enabled bool `yaml:"enabled" env:"ENABLED"`
	// OTLP 端点
	OTLPEndpoint string `yaml:"otlp_endpoint" env:"OTLP_ENDPOINT"`
	// 服务名称
	ServiceName string `yaml:"service_name" env:"SERVICE_NAME"`
	// 采样率
	SampleRate float64 `yaml:"sample_rate" env:"SAMPLE_RATE"`
}

// =============================================================================
// 🔑 兼容环境变量
// =============================================================================

// legacyEnv 映射原有部署使用的无前缀变量名。
var legacyEnv = []struct {
	key string
	set func(cfg *Config, value string) error
}{
	{"PORT", func(c *Config, v string) error {
		p, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		c.Server.HTTPPort = p
		return nil
	}},
	{"LANGUAGE_TRANSLATOR_IAM_APIKEY", func(c *Config, v string) error { c.Translator.APIKey = v; return nil }},
	{"LANGUAGE_TRANSLATOR_URL", func(c *Config, v string) error { c.Translator.URL = v; return nil }},
	{"TEXT_TO_SPEECH_API_KEY", func(c *Config, v string) error { c.Speech.APIKey = v; return nil }},
	{"TEXT_TO_SPEECH_IAM_APIKEY", func(c *Config, v string) error { c.Speech.APIKey = v; return nil }},
	{"TEXT_TO_SPEECH_URL", func(c *Config, v string) error { c.Speech.URL = v; return nil }},
	{"GOOGLE_APPLICATION_CREDENTIALS", func(c *Config, v string) error { c.Speech.GoogleCredentialsFile = v; return nil }},
}

// =============================================================================
// 🔧 配置加载器
// =============================================================================

// Loader 配置加载器（Builder 模式）
type Loader struct {
	configPath string
	envFile    string
	envPrefix  string
	validators []func(*Config) error
	lookupEnv  func(string) (string, bool)
}

// NewLoader 创建新的配置加载器
func NewLoader() *Loader {
	return &Loader{
		envPrefix:  "VOXBRIDGE",
		validators: make([]func(*Config) error, 0),
		lookupEnv:  os.LookupEnv,
	}
}

// WithConfigPath 设置配置文件路径
func (l *Loader) WithConfigPath(path string) *Loader {
	l.configPath = path
	return l
}

// WithEnvFile 设置 .env 文件路径
func (l *Loader) WithEnvFile(path string) *Loader {
	l.envFile = path
	return l
}

// WithEnvPrefix 设置环境变量前缀
func (l *Loader) WithEnvPrefix(prefix string) *Loader {
	l.envPrefix = prefix
	return l
}

// WithValidator 添加配置验证器
func (l *Loader) WithValidator(v func(*Config) error) *Loader {
	l.validators = append(l.validators, v)
	return l
}

// Load 加载配置
// 优先级: 默认值 → YAML 文件 → 兼容环境变量 → 前缀环境变量
func (l *Loader) Load() (*Config, error) {
	// 1. 从默认值开始
	cfg := DefaultConfig()

	// 2. 如果指定了配置文件，从文件加载
	if l.configPath != "" {
		if err := l.loadFromFile(cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// 3. 合并 .env 文件（进程环境变量优先）
	lookup, err := l.envLookup()
	if err != nil {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	// 4. 兼容环境变量
	for _, le := range legacyEnv {
		v, ok := lookup(le.key)
		if !ok || v == "" {
			continue
		}
		if err := le.set(cfg, v); err != nil {
			return nil, fmt.Errorf("failed to set %s: %w", le.key, err)
		}
	}

	// 5. 前缀环境变量覆盖
	if err := l.setFieldsFromEnv(reflect.ValueOf(cfg).Elem(), l.envPrefix, lookup); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// 6. 运行验证器
	for _, v := range l.validators {
		if err := v(cfg); err != nil {
			return nil, fmt.Errorf("config validation failed: %w", err)
		}
	}

	return cfg, nil
}

// loadFromFile 从 YAML 文件加载配置
func (l *Loader) loadFromFile(cfg *Config) error {
	data, err := os.ReadFile(l.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// 文件不存在，使用默认值
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// envLookup 返回合并了 .env 文件的查找函数，不修改进程环境。
func (l *Loader) envLookup() (func(string) (string, bool), error) {
	if l.envFile == "" {
		return l.lookupEnv, nil
	}

	fileEnv, err := godotenv.Read(l.envFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return l.lookupEnv, nil
		}
		return nil, err
	}

	return func(key string) (string, bool) {
		if v, ok := l.lookupEnv(key); ok {
			return v, true
		}
		v, ok := fileEnv[key]
		return v, ok
	}, nil
}

// setFieldsFromEnv 递归设置结构体字段
func (l *Loader) setFieldsFromEnv(v reflect.Value, prefix string, lookup func(string) (string, bool)) error {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		// 获取 env tag
		envTag := fieldType.Tag.Get("env")
		if envTag == "" || envTag == "-" {
			continue
		}

		envKey := prefix + "_" + envTag

		// 如果是结构体，递归处理
		if field.Kind() == reflect.Struct {
			if err := l.setFieldsFromEnv(field, envKey, lookup); err != nil {
				return err
			}
			continue
		}

		envValue, ok := lookup(envKey)
		if !ok || envValue == "" {
			continue
		}

		if err := setFieldValue(field, envValue); err != nil {
			return fmt.Errorf("failed to set %s: %w", envKey, err)
		}
	}

	return nil
}

// setFieldValue 设置字段值
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

	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		field.SetFloat(f)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)

	case reflect.Slice:
		// 支持逗号分隔的字符串切片
		if field.Type().Elem().Kind() == reflect.String {
			parts := strings.Split(value, ",")
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			field.Set(reflect.ValueOf(parts))
		}
	}

	return nil
}

// =============================================================================
// 🔍 辅助函数
// =============================================================================

// Validate 验证配置
func (c *Config) Validate() error {
	var errs []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		errs = append(errs, "invalid HTTP port")
	}
	if c.Server.MetricsPort < 0 || c.Server.MetricsPort > 65535 {
		errs = append(errs, "invalid metrics port")
	}
	if c.Server.MetricsPort != 0 && c.Server.MetricsPort == c.Server.HTTPPort {
		errs = append(errs, "metrics port must differ from HTTP port")
	}

	switch c.Speech.Provider {
	case SpeechProviderWatson, SpeechProviderGoogle:
	default:
		errs = append(errs, fmt.Sprintf("unsupported speech provider %q", c.Speech.Provider))
	}

	switch c.Web.Locale {
	case "en", "es":
	default:
		errs = append(errs, fmt.Sprintf("unsupported locale %q", c.Web.Locale))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation errors: %s", strings.Join(errs, "; "))
	}

	return nil
}
