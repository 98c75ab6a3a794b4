package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/BaSui01/voxbridge/config"
	"github.com/BaSui01/voxbridge/speech"
	"github.com/BaSui01/voxbridge/translator"
	"github.com/BaSui01/voxbridge/types"
)

func emptyConfig() *config.Config {
	return config.DefaultConfig()
}

func TestNew_NoCredentials(t *testing.T) {
	f := New(emptyConfig(), zap.NewNop())
	assert.False(t, f.HasTranslator())
	assert.False(t, f.HasSpeech())
	require.NoError(t, f.Close())
}

func TestNew_WatsonCredentials(t *testing.T) {
	cfg := emptyConfig()
	cfg.Translator.APIKey = "t-key"
	cfg.Speech.APIKey = "s-key"

	f := New(cfg, nil)
	assert.True(t, f.HasTranslator())
	assert.True(t, f.HasSpeech())
}

func TestFacade_TranslationWithoutCredentials(t *testing.T) {
	f := New(emptyConfig(), zap.NewNop())
	ctx := context.Background()

	_, err := f.ListModels(ctx)
	assert.ErrorIs(t, err, ErrMissingCredentials)
	_, err = f.Identify(ctx, "hello")
	assert.ErrorIs(t, err, ErrMissingCredentials)
	_, err = f.ListIdentifiableLanguages(ctx)
	assert.ErrorIs(t, err, ErrMissingCredentials)
	_, err = f.Translate(ctx, translator.TranslateRequest{Text: translator.TextList{"hello"}})
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestFacade_ListVoicesFallback(t *testing.T) {
	rec := &fakeRecorder{}
	f := New(emptyConfig(), zap.NewNop(), WithRecorder(rec))

	voices, err := f.ListVoices(context.Background())
	require.NoError(t, err)
	require.Len(t, voices.Voices, 1)
	assert.Equal(t, "es-ES_EnriqueV3Voice", voices.Voices[0].Name)
	assert.Equal(t, "Enrique: American English female voice. Dnn technology.", voices.Voices[0].Description)
	assert.Equal(t, 1, rec.fallbacks)
	assert.Empty(t, rec.calls)
}

func TestFacade_SynthesizeWithoutCredentials(t *testing.T) {
	f := New(emptyConfig(), zap.NewNop())
	_, err := f.Synthesize(context.Background(), speech.SynthesizeParams{Text: "hi"})
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestFacade_PassThrough(t *testing.T) {
	rec := &fakeRecorder{}
	f := New(emptyConfig(), zap.NewNop(),
		WithTranslator(&fakeTranslator{}),
		WithSpeech(&fakeSpeech{}),
		WithRecorder(rec),
	)
	ctx := context.Background()

	res, err := f.Translate(ctx, translator.TranslateRequest{Text: translator.TextList{"hello"}, Source: "en", Target: "es"})
	require.NoError(t, err)
	assert.Len(t, res.Translations, 1)

	voices, err := f.ListVoices(ctx)
	require.NoError(t, err)
	assert.Len(t, voices.Voices, 2)

	audio, err := f.Synthesize(ctx, speech.SynthesizeParams{Text: "abc"})
	require.NoError(t, err)
	data, _ := io.ReadAll(audio.Body)
	assert.Equal(t, "abc", string(data))

	require.Len(t, rec.calls, 3)
	assert.Equal(t, recordedCall{capability: CapabilityTranslation, operation: "translate"}, rec.calls[0])
	assert.Equal(t, recordedCall{capability: CapabilitySpeech, operation: "list_voices"}, rec.calls[1])
	assert.Equal(t, recordedCall{capability: CapabilitySpeech, operation: "synthesize"}, rec.calls[2])
	assert.Zero(t, rec.fallbacks)
}

func TestFacade_RemoteErrorsPassUnchanged(t *testing.T) {
	remote := types.NewError(types.ErrUpstreamError, "boom").WithHTTPStatus(http.StatusBadGateway)
	f := New(emptyConfig(), zap.NewNop(),
		WithTranslator(&fakeTranslator{err: remote}),
		WithSpeech(&fakeSpeech{err: remote}),
	)
	ctx := context.Background()

	_, err := f.ListModels(ctx)
	assert.Same(t, remote, err)
	_, err = f.ListVoices(ctx)
	assert.Same(t, remote, err)
	_, err = f.Synthesize(ctx, speech.SynthesizeParams{})
	assert.Same(t, remote, err)
}

func TestFacade_WatsonEndToEnd(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/identity/token", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"access_token":"tok","expires_in":3600}`))
	})
	mux.HandleFunc("/v3/identify", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"languages":[{"language":"fr","confidence":0.8}]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	cfg := emptyConfig()
	cfg.Translator.APIKey = "key"
	cfg.Translator.URL = srv.URL
	cfg.Translator.IAMURL = srv.URL + "/identity/token"

	f := New(cfg, zap.NewNop())
	first, err := f.Identify(context.Background(), "bonjour")
	require.NoError(t, err)
	second, err := f.Identify(context.Background(), "bonjour")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, "fr", first.Languages[0].Language)
}

// Every operation on an absent handle fails with the same error, never partially.
func TestProperty_AbsentHandleAlwaysMissingCredentials(t *testing.T) {
	f := New(emptyConfig(), zap.NewNop())
	ctx := context.Background()

	rapid.Check(t, func(rt *rapid.T) {
		text := rapid.String().Draw(rt, "text")
		op := rapid.IntRange(0, 4).Draw(rt, "op")

		var res any
		var err error
		switch op {
		case 0:
			res, err = f.ListModels(ctx)
		case 1:
			res, err = f.Identify(ctx, text)
		case 2:
			res, err = f.ListIdentifiableLanguages(ctx)
		case 3:
			res, err = f.Translate(ctx, translator.TranslateRequest{Text: translator.TextList{text}})
		case 4:
			res, err = f.Synthesize(ctx, speech.SynthesizeParams{Text: text})
		}

		if !errors.Is(err, ErrMissingCredentials) {
			rt.Fatalf("op %d: expected ErrMissingCredentials, got %v", op, err)
		}
		assert.Nil(rt, res)
	})
}
