package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/BaSui01/voxbridge/internal/watson"
)

// WatsonProvider implements Provider on IBM Watson Text to Speech v1.
type WatsonProvider struct {
	cfg    WatsonConfig
	client *watson.Client
	logger *zap.Logger
}

// NewWatsonProvider creates a Watson speech provider.
func NewWatsonProvider(cfg WatsonConfig, logger *zap.Logger, opts ...watson.Option) *WatsonProvider {
	if cfg.URL == "" {
		cfg.URL = DefaultWatsonConfig().URL
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	auth := watson.NewIAMAuthenticator(cfg.APIKey, cfg.IAMURL, nil)
	return &WatsonProvider{
		cfg:    cfg,
		client: watson.NewClient("watson-speech", cfg.URL, auth, opts...),
		logger: logger.With(zap.String("component", "speech"), zap.String("provider", "watson")),
	}
}

// Name returns the provider name.
func (p *WatsonProvider) Name() string { return "watson-speech" }

// ListVoices lists the available voices.
func (p *WatsonProvider) ListVoices(ctx context.Context) (*VoiceList, error) {
	if p.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.Timeout)
		defer cancel()
	}

	var out VoiceList
	if err := p.client.DoJSON(ctx, http.MethodGet, "/v1/voices", nil, nil, watson.Capture(&out, &out.raw)); err != nil {
		return nil, err
	}
	p.logger.Debug("listed voices", zap.Int("count", len(out.Voices)))
	return &out, nil
}

// reserved query keys are carried in dedicated fields.
var reservedSynthesizeKeys = map[string]struct{}{
	"text":   {},
	"voice":  {},
	"accept": {},
}

// Synthesize starts a synthesis and returns the audio stream without
// buffering it. The text travels in the JSON body; voice and any extra
// parameters travel in the query string.
func (p *WatsonProvider) Synthesize(ctx context.Context, params SynthesizeParams) (*Audio, error) {
	query := url.Values{}
	for k, v := range params.Extra {
		if _, reserved := reservedSynthesizeKeys[k]; reserved {
			continue
		}
		query[k] = v
	}
	if params.Voice != "" {
		query.Set("voice", params.Voice)
	}

	payload, err := json.Marshal(map[string]string{"text": params.Text})
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(ctx, watson.Request{
		Method:      http.MethodPost,
		Path:        "/v1/synthesize",
		Query:       query,
		Body:        bytes.NewReader(payload),
		ContentType: "application/json",
		Accept:      params.Accept,
	})
	if err != nil {
		return nil, err
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = params.Accept
	}
	if contentType == "" {
		contentType = DefaultAccept
	}

	p.logger.Debug("synthesis started",
		zap.String("voice", params.Voice),
		zap.String("content_type", contentType),
		zap.Int("text_length", len(params.Text)),
	)

	return &Audio{ContentType: contentType, Body: resp.Body}, nil
}
