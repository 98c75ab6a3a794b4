package translator

import (
	"context"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/BaSui01/voxbridge/internal/watson"
)

// WatsonProvider implements Provider on IBM Watson Language Translator v3.
type WatsonProvider struct {
	cfg    WatsonConfig
	client *watson.Client
	logger *zap.Logger
}

// NewWatsonProvider creates a Watson translator. opts are applied to the
// underlying REST client after the configured defaults.
func NewWatsonProvider(cfg WatsonConfig, logger *zap.Logger, opts ...watson.Option) *WatsonProvider {
	def := DefaultWatsonConfig()
	if cfg.URL == "" {
		cfg.URL = def.URL
	}
	if cfg.Version == "" {
		cfg.Version = def.Version
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	auth := watson.NewIAMAuthenticator(cfg.APIKey, cfg.IAMURL, nil)
	base := []watson.Option{
		watson.WithTimeout(cfg.Timeout),
		watson.WithDefaultQuery("version", cfg.Version),
		watson.WithDefaultHeader("X-Watson-Learning-Opt-Out", strconv.FormatBool(cfg.LearningOptOut)),
	}
	if cfg.TechnologyPreview != "" {
		base = append(base, watson.WithDefaultHeader("X-Watson-Technology-Preview", cfg.TechnologyPreview))
	}

	return &WatsonProvider{
		cfg:    cfg,
		client: watson.NewClient("watson-translator", cfg.URL, auth, append(base, opts...)...),
		logger: logger.With(zap.String("component", "translator"), zap.String("provider", "watson")),
	}
}

// Name returns the provider name.
func (p *WatsonProvider) Name() string { return "watson-translator" }

// ListModels lists the available translation models.
func (p *WatsonProvider) ListModels(ctx context.Context) (*ModelList, error) {
	var out ModelList
	if err := p.client.DoJSON(ctx, http.MethodGet, "/v3/models", nil, nil, watson.Capture(&out, &out.raw)); err != nil {
		return nil, err
	}
	p.logger.Debug("listed models", zap.Int("count", len(out.Models)))
	return &out, nil
}

// Identify detects the language of text.
func (p *WatsonProvider) Identify(ctx context.Context, text string) (*IdentifiedLanguages, error) {
	var out IdentifiedLanguages
	if err := p.client.DoText(ctx, "/v3/identify", text, watson.Capture(&out, &out.raw)); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListIdentifiableLanguages lists the languages Identify can detect.
func (p *WatsonProvider) ListIdentifiableLanguages(ctx context.Context) (*IdentifiableLanguages, error) {
	var out IdentifiableLanguages
	if err := p.client.DoJSON(ctx, http.MethodGet, "/v3/identifiable_languages", nil, nil, watson.Capture(&out, &out.raw)); err != nil {
		return nil, err
	}
	return &out, nil
}

// Translate translates req.Text.
func (p *WatsonProvider) Translate(ctx context.Context, req TranslateRequest) (*TranslationResult, error) {
	var out TranslationResult
	if err := p.client.DoJSON(ctx, http.MethodPost, "/v3/translate", nil, req, watson.Capture(&out, &out.raw)); err != nil {
		return nil, err
	}
	p.logger.Debug("translated",
		zap.Int("segments", len(out.Translations)),
		zap.Int("character_count", out.CharacterCount),
	)
	return &out, nil
}
