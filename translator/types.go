package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// Provider is a language translation backend.
type Provider interface {
	Name() string
	ListModels(ctx context.Context) (*ModelList, error)
	Identify(ctx context.Context, text string) (*IdentifiedLanguages, error)
	ListIdentifiableLanguages(ctx context.Context) (*IdentifiableLanguages, error)
	Translate(ctx context.Context, req TranslateRequest) (*TranslationResult, error)
}

// Model describes a translation model.
type Model struct {
	ModelID      string `json:"model_id"`
	Name         string `json:"name,omitempty"`
	Source       string `json:"source,omitempty"`
	Target       string `json:"target,omitempty"`
	BaseModelID  string `json:"base_model_id,omitempty"`
	Domain       string `json:"domain,omitempty"`
	Customizable bool   `json:"customizable"`
	Default      bool   `json:"default"`
	Owner        string `json:"owner,omitempty"`
	Status       string `json:"status,omitempty"`
}

// ModelList is the result of ListModels.
type ModelList struct {
	Models []Model `json:"models"`

	raw json.RawMessage
}

// MarshalJSON writes the upstream body when the list came from a backend.
func (m ModelList) MarshalJSON() ([]byte, error) {
	type plain ModelList
	return marshalRemote(m.raw, plain(m))
}

// IdentifiedLanguage is one candidate language with its confidence.
type IdentifiedLanguage struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
}

// IdentifiedLanguages is the result of Identify, ordered by confidence.
type IdentifiedLanguages struct {
	Languages []IdentifiedLanguage `json:"languages"`

	raw json.RawMessage
}

// MarshalJSON writes the upstream body when the result came from a backend.
func (l IdentifiedLanguages) MarshalJSON() ([]byte, error) {
	type plain IdentifiedLanguages
	return marshalRemote(l.raw, plain(l))
}

// IdentifiableLanguage is a language the identifier can detect.
type IdentifiableLanguage struct {
	Language string `json:"language"`
	Name     string `json:"name"`
}

// IdentifiableLanguages is the result of ListIdentifiableLanguages.
type IdentifiableLanguages struct {
	Languages []IdentifiableLanguage `json:"languages"`

	raw json.RawMessage
}

// MarshalJSON writes the upstream body when the list came from a backend.
func (l IdentifiableLanguages) MarshalJSON() ([]byte, error) {
	type plain IdentifiableLanguages
	return marshalRemote(l.raw, plain(l))
}

// TextList holds the input texts of a translate call. It decodes from
// either a JSON string or an array of strings.
type TextList []string

// UnmarshalJSON implements json.Unmarshaler.
func (t *TextList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = nil
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = TextList{s}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("text must be a string or an array of strings: %w", err)
	}
	*t = list
	return nil
}

// TranslateRequest is forwarded to the backend as-is. Either ModelID or
// the Source/Target pair selects the model.
type TranslateRequest struct {
	Text    TextList `json:"text"`
	ModelID string   `json:"model_id,omitempty"`
	Source  string   `json:"source,omitempty"`
	Target  string   `json:"target,omitempty"`
}

// Translation is one translated segment.
type Translation struct {
	Translation string `json:"translation"`
}

// TranslationResult is the result of Translate.
type TranslationResult struct {
	WordCount                  int           `json:"word_count"`
	CharacterCount             int           `json:"character_count"`
	DetectedLanguage           string        `json:"detected_language,omitempty"`
	DetectedLanguageConfidence float64       `json:"detected_language_confidence,omitempty"`
	Translations               []Translation `json:"translations"`

	raw json.RawMessage
}

// MarshalJSON writes the upstream body when the result came from a backend.
func (r TranslationResult) MarshalJSON() ([]byte, error) {
	type plain TranslationResult
	return marshalRemote(r.raw, plain(r))
}

// marshalRemote returns raw untouched when set so fields the typed view
// does not declare survive, and encodes v otherwise.
func marshalRemote(raw json.RawMessage, v any) ([]byte, error) {
	if len(raw) > 0 {
		return raw, nil
	}
	return json.Marshal(v)
}
