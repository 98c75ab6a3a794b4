// =============================================================================
// 📦 VoxBridge 默认配置
// =============================================================================
package config

import "time"

// 语音后端
const (
	SpeechProviderWatson = "watson"
	SpeechProviderGoogle = "google"
)

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Server:     DefaultServerConfig(),
		Translator: DefaultTranslatorConfig(),
		Speech:     DefaultSpeechConfig(),
		Web:        DefaultWebConfig(),
		Log:        DefaultLogConfig(),
		Telemetry:  DefaultTelemetryConfig(),
	}
}

// DefaultServerConfig 返回默认服务器配置
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		HTTPPort:        3000,
		MetricsPort:     9091,
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    5 * time.Minute,
		IdleTimeout:     2 * time.Minute,
		ShutdownTimeout: 15 * time.Second,
		MaxBodyBytes:    1 << 20,
	}
}

// DefaultTranslatorConfig 返回默认翻译服务配置
func DefaultTranslatorConfig() TranslatorConfig {
	return TranslatorConfig{
		URL:               "https://api.us-south.language-translator.watson.cloud.ibm.com",
		IAMURL:            "https://iam.cloud.ibm.com/identity/token",
		Version:           "2019-10-10",
		TechnologyPreview: "2018-05-01",
		LearningOptOut:    true,
		Timeout:           60 * time.Second,
	}
}

// DefaultSpeechConfig 返回默认语音合成配置
func DefaultSpeechConfig() SpeechConfig {
	return SpeechConfig{
		Provider: SpeechProviderWatson,
		URL:      "https://api.us-south.text-to-speech.watson.cloud.ibm.com",
		IAMURL:   "https://iam.cloud.ibm.com/identity/token",
		Timeout:  30 * time.Second,
	}
}

// DefaultWebConfig 返回默认前端配置
func DefaultWebConfig() WebConfig {
	return WebConfig{
		Locale:         "en",
		AllowEmbedding: true,
		Title:          "Language Translator",
	}
}

// DefaultLogConfig 返回默认日志配置
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:            "info",
		Format:           "json",
		OutputPaths:      []string{"stdout"},
		EnableCaller:     true,
		EnableStacktrace: false,
	}
}

// DefaultTelemetryConfig 返回默认遥测配置
func DefaultTelemetryConfig() TelemetryConfig {
	return TelemetryConfig{
		Enabled:      false,
		OTLPEndpoint: "localhost:4317",
		ServiceName:  "voxbridge",
		SampleRate:   0.1,
	}
}
