package service

import (
	"github.com/BaSui01/voxbridge/config"
	"github.com/BaSui01/voxbridge/speech"
	"github.com/BaSui01/voxbridge/translator"
)

// Credentials is the resolved credential source of each capability.
type Credentials struct {
	Translator        translator.WatsonConfig
	TranslatorPresent bool

	SpeechProvider string
	Speech         speech.WatsonConfig
	Google         speech.GoogleConfig
	// SpeechPresent is true when the speech backend can be attempted. For
	// Google it is always true since application default credentials may
	// apply; client construction decides.
	SpeechPresent bool
}

// ResolveCredentials reads cfg and decides, per capability, whether a
// credential source exists. It never fails: missing values only mark the
// capability absent.
func ResolveCredentials(cfg *config.Config) Credentials {
	var creds Credentials
	if cfg == nil {
		return creds
	}

	t := cfg.Translator
	creds.Translator = translator.WatsonConfig{
		APIKey:            t.APIKey,
		URL:               t.URL,
		IAMURL:            t.IAMURL,
		Version:           t.Version,
		TechnologyPreview: t.TechnologyPreview,
		LearningOptOut:    t.LearningOptOut,
		Timeout:           t.Timeout,
	}
	creds.TranslatorPresent = t.APIKey != ""

	s := cfg.Speech
	creds.SpeechProvider = s.Provider
	if creds.SpeechProvider == "" {
		creds.SpeechProvider = config.SpeechProviderWatson
	}
	switch creds.SpeechProvider {
	case config.SpeechProviderGoogle:
		creds.Google = speech.GoogleConfig{
			CredentialsFile: s.GoogleCredentialsFile,
			DefaultVoice:    speech.DefaultGoogleConfig().DefaultVoice,
			Timeout:         s.Timeout,
		}
		creds.SpeechPresent = true
	default:
		creds.Speech = speech.WatsonConfig{
			APIKey:  s.APIKey,
			URL:     s.URL,
			IAMURL:  s.IAMURL,
			Timeout: s.Timeout,
		}
		creds.SpeechPresent = s.APIKey != ""
	}

	return creds
}
