package speech

import "time"

// WatsonConfig configures the Watson Text to Speech v1 backend.
type WatsonConfig struct {
	APIKey string `json:"api_key" yaml:"api_key"`
	URL    string `json:"url" yaml:"url"`
	IAMURL string `json:"iam_url,omitempty" yaml:"iam_url,omitempty"`
	// Timeout bounds ListVoices only; audio streams run as long as the caller's context.
	Timeout time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// GoogleConfig configures the Google Cloud Text-to-Speech backend.
type GoogleConfig struct {
	CredentialsFile string        `json:"credentials_file,omitempty" yaml:"credentials_file,omitempty"`
	Endpoint        string        `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	DefaultVoice    string        `json:"default_voice,omitempty" yaml:"default_voice,omitempty"`
	Timeout         time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// DefaultWatsonConfig returns the default Watson speech configuration.
func DefaultWatsonConfig() WatsonConfig {
	return WatsonConfig{
		URL:     "https://api.us-south.text-to-speech.watson.cloud.ibm.com",
		Timeout: 30 * time.Second,
	}
}

// DefaultGoogleConfig returns the default Google speech configuration.
func DefaultGoogleConfig() GoogleConfig {
	return GoogleConfig{
		DefaultVoice: "en-US-Standard-C",
		Timeout:      30 * time.Second,
	}
}
