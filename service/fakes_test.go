package service

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/BaSui01/voxbridge/speech"
	"github.com/BaSui01/voxbridge/translator"
)

type fakeTranslator struct {
	err error
}

func (f *fakeTranslator) Name() string { return "fake-translator" }

func (f *fakeTranslator) ListModels(context.Context) (*translator.ModelList, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &translator.ModelList{Models: []translator.Model{{ModelID: "en-es", Source: "en", Target: "es"}}}, nil
}

func (f *fakeTranslator) Identify(_ context.Context, text string) (*translator.IdentifiedLanguages, error) {
	if f.err != nil {
		return nil, f.err
	}
	lang := "en"
	if strings.Contains(text, "hola") {
		lang = "es"
	}
	return &translator.IdentifiedLanguages{Languages: []translator.IdentifiedLanguage{{Language: lang, Confidence: 0.9}}}, nil
}

func (f *fakeTranslator) ListIdentifiableLanguages(context.Context) (*translator.IdentifiableLanguages, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &translator.IdentifiableLanguages{Languages: []translator.IdentifiableLanguage{{Language: "en", Name: "English"}}}, nil
}

func (f *fakeTranslator) Translate(_ context.Context, req translator.TranslateRequest) (*translator.TranslationResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := &translator.TranslationResult{WordCount: len(req.Text)}
	for _, t := range req.Text {
		out.Translations = append(out.Translations, translator.Translation{Translation: t})
	}
	return out, nil
}

type fakeSpeech struct {
	err error
}

func (f *fakeSpeech) Name() string { return "fake-speech" }

func (f *fakeSpeech) ListVoices(context.Context) (*speech.VoiceList, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &speech.VoiceList{Voices: []speech.Voice{{Name: "en-US_AllisonV3Voice"}, {Name: "es-ES_LauraV3Voice"}}}, nil
}

func (f *fakeSpeech) Synthesize(_ context.Context, params speech.SynthesizeParams) (*speech.Audio, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &speech.Audio{ContentType: "audio/mpeg", Body: io.NopCloser(strings.NewReader(params.Text))}, nil
}

type recordedCall struct {
	capability string
	operation  string
	err        error
}

type fakeRecorder struct {
	mu        sync.Mutex
	calls     []recordedCall
	fallbacks int
}

func (r *fakeRecorder) RecordUpstreamCall(capability, operation string, err error, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, recordedCall{capability: capability, operation: operation, err: err})
}

func (r *fakeRecorder) RecordFallbackVoices() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallbacks++
}
