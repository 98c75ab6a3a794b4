package speech

import (
	"context"
	"encoding/json"
	"io"
	"net/url"
)

// Provider is a text-to-speech backend.
type Provider interface {
	Name() string
	ListVoices(ctx context.Context) (*VoiceList, error)
	Synthesize(ctx context.Context, params SynthesizeParams) (*Audio, error)
}

// SupportedFeatures lists optional voice capabilities.
type SupportedFeatures struct {
	CustomPronunciation bool `json:"custom_pronunciation"`
	VoiceTransformation bool `json:"voice_transformation"`
}

// Voice describes a synthesis voice.
type Voice struct {
	Name              string             `json:"name"`
	Language          string             `json:"language,omitempty"`
	Gender            string             `json:"gender,omitempty"`
	Description       string             `json:"description"`
	URL               string             `json:"url,omitempty"`
	Customizable      bool               `json:"customizable,omitempty"`
	SupportedFeatures *SupportedFeatures `json:"supported_features,omitempty"`
}

// VoiceList is the result of ListVoices.
type VoiceList struct {
	Voices []Voice `json:"voices"`

	raw json.RawMessage
}

// MarshalJSON writes the upstream body when the list came from a backend
// that returns JSON, and the typed view for lists built locally.
func (l VoiceList) MarshalJSON() ([]byte, error) {
	if len(l.raw) > 0 {
		return l.raw, nil
	}
	type plain VoiceList
	return json.Marshal(plain(l))
}

// SynthesizeParams holds the inputs of a synthesis call. Extra carries any
// further query parameters, which backends forward when they understand them.
type SynthesizeParams struct {
	Text   string
	Voice  string
	Accept string
	Extra  url.Values
}

// Audio is a synthesized audio stream. The caller must close Body.
type Audio struct {
	ContentType string
	Body        io.ReadCloser
}

// DefaultAccept is the audio format used when none is requested.
const DefaultAccept = "audio/ogg;codecs=opus"
