package translator

import "time"

// WatsonConfig configures the Watson Language Translator v3 backend.
type WatsonConfig struct {
	APIKey            string        `json:"api_key" yaml:"api_key"`
	URL               string        `json:"url" yaml:"url"`
	IAMURL            string        `json:"iam_url,omitempty" yaml:"iam_url,omitempty"`
	Version           string        `json:"version,omitempty" yaml:"version,omitempty"`
	TechnologyPreview string        `json:"technology_preview,omitempty" yaml:"technology_preview,omitempty"`
	LearningOptOut    bool          `json:"learning_opt_out" yaml:"learning_opt_out"`
	Timeout           time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// DefaultWatsonConfig returns the default Watson translator configuration.
func DefaultWatsonConfig() WatsonConfig {
	return WatsonConfig{
		URL:               "https://api.us-south.language-translator.watson.cloud.ibm.com",
		Version:           "2019-10-10",
		TechnologyPreview: "2018-05-01",
		LearningOptOut:    true,
		Timeout:           60 * time.Second,
	}
}
