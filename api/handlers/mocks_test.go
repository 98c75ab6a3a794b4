package handlers

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/BaSui01/voxbridge/speech"
	"github.com/BaSui01/voxbridge/translator"
)

// =============================================================================
// 🧪 模拟服务
// =============================================================================

type mockTranslationService struct {
	listModelsFunc   func(ctx context.Context) (*translator.ModelList, error)
	identifyFunc     func(ctx context.Context, text string) (*translator.IdentifiedLanguages, error)
	identifiableFunc func(ctx context.Context) (*translator.IdentifiableLanguages, error)
	translateFunc    func(ctx context.Context, req translator.TranslateRequest) (*translator.TranslationResult, error)
}

func (m *mockTranslationService) ListModels(ctx context.Context) (*translator.ModelList, error) {
	if m.listModelsFunc != nil {
		return m.listModelsFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockTranslationService) Identify(ctx context.Context, text string) (*translator.IdentifiedLanguages, error) {
	if m.identifyFunc != nil {
		return m.identifyFunc(ctx, text)
	}
	return nil, errors.New("not implemented")
}

func (m *mockTranslationService) ListIdentifiableLanguages(ctx context.Context) (*translator.IdentifiableLanguages, error) {
	if m.identifiableFunc != nil {
		return m.identifiableFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockTranslationService) Translate(ctx context.Context, req translator.TranslateRequest) (*translator.TranslationResult, error) {
	if m.translateFunc != nil {
		return m.translateFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

type mockSpeechService struct {
	listVoicesFunc func(ctx context.Context) (*speech.VoiceList, error)
	synthesizeFunc func(ctx context.Context, params speech.SynthesizeParams) (*speech.Audio, error)
}

func (m *mockSpeechService) ListVoices(ctx context.Context) (*speech.VoiceList, error) {
	if m.listVoicesFunc != nil {
		return m.listVoicesFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockSpeechService) Synthesize(ctx context.Context, params speech.SynthesizeParams) (*speech.Audio, error) {
	if m.synthesizeFunc != nil {
		return m.synthesizeFunc(ctx, params)
	}
	return nil, errors.New("not implemented")
}

type mockAudioRecorder struct {
	contentType string
	bytes       int64
}

func (m *mockAudioRecorder) RecordAudioBytes(contentType string, n int64) {
	m.contentType = contentType
	m.bytes += n
}

// trackingBody 记录是否被关闭
type trackingBody struct {
	io.Reader
	closed bool
}

func (b *trackingBody) Close() error {
	b.closed = true
	return nil
}

func newTrackingBody(s string) *trackingBody {
	return &trackingBody{Reader: strings.NewReader(s)}
}
