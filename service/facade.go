package service

import (
	"context"
	"errors"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/BaSui01/voxbridge/config"
	"github.com/BaSui01/voxbridge/speech"
	"github.com/BaSui01/voxbridge/translator"
)

// Capability names.
const (
	CapabilityTranslation = "translation"
	CapabilitySpeech      = "speech"
)

// FallbackVoice is the only voice ListVoices returns when the speech
// capability is absent.
var FallbackVoice = speech.Voice{
	Name:        "es-ES_EnriqueV3Voice",
	Description: "Enrique: American English female voice. Dnn technology.",
}

// Recorder observes upstream calls.
type Recorder interface {
	RecordUpstreamCall(capability, operation string, err error, duration time.Duration)
	RecordFallbackVoices()
}

type nopRecorder struct{}

func (nopRecorder) RecordUpstreamCall(string, string, error, time.Duration) {}
func (nopRecorder) RecordFallbackVoices()                                   {}

// Facade exposes the translation and speech operations over the two
// service handles. It performs no retries and does not translate errors.
type Facade struct {
	translator Handle[translator.Provider]
	speech     Handle[speech.Provider]
	recorder   Recorder
	logger     *zap.Logger
	closers    []io.Closer
}

// Option configures a Facade.
type Option func(*Facade)

// WithTranslator installs p as a present translation handle.
func WithTranslator(p translator.Provider) Option {
	return func(f *Facade) {
		f.translator = Present(CapabilityTranslation, p)
	}
}

// WithSpeech installs p as a present speech handle.
func WithSpeech(p speech.Provider) Option {
	return func(f *Facade) {
		f.speech = Present(CapabilitySpeech, p)
	}
}

// WithRecorder sets the upstream call recorder.
func WithRecorder(r Recorder) Option {
	return func(f *Facade) {
		if r != nil {
			f.recorder = r
		}
	}
}

// New resolves credentials from cfg and builds the façade. Missing
// credentials never fail construction; the affected capability is absent
// and its operations return ErrMissingCredentials.
func New(cfg *config.Config, logger *zap.Logger, opts ...Option) *Facade {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("component", "service"))

	f := &Facade{
		translator: Absent[translator.Provider](CapabilityTranslation),
		speech:     Absent[speech.Provider](CapabilitySpeech),
		recorder:   nopRecorder{},
		logger:     logger,
	}

	creds := ResolveCredentials(cfg)
	if creds.TranslatorPresent {
		f.translator = Present[translator.Provider](CapabilityTranslation,
			translator.NewWatsonProvider(creds.Translator, logger))
	} else {
		logger.Warn("translator credentials not configured, translation operations will fail")
	}

	switch {
	case !creds.SpeechPresent:
		logger.Warn("speech credentials not configured, synthesis will fail and voices fall back to a built-in list")
	case creds.SpeechProvider == config.SpeechProviderGoogle:
		gp, err := speech.NewGoogleProvider(context.Background(), creds.Google, logger)
		if err != nil {
			logger.Warn("google speech client unavailable, speech capability absent", zap.Error(err))
			break
		}
		f.speech = Present[speech.Provider](CapabilitySpeech, gp)
		f.closers = append(f.closers, gp)
	default:
		f.speech = Present[speech.Provider](CapabilitySpeech,
			speech.NewWatsonProvider(creds.Speech, logger))
	}

	for _, opt := range opts {
		opt(f)
	}

	logger.Info("service facade ready",
		zap.Bool("translation", f.translator.IsPresent()),
		zap.Bool("speech", f.speech.IsPresent()),
	)
	return f
}

// HasTranslator reports whether the translation capability is present.
func (f *Facade) HasTranslator() bool { return f.translator.IsPresent() }

// HasSpeech reports whether the speech capability is present.
func (f *Facade) HasSpeech() bool { return f.speech.IsPresent() }

// Close releases backend connections.
func (f *Facade) Close() error {
	var errs []error
	for _, c := range f.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f *Facade) observe(capability, operation string, start time.Time, err error) {
	f.recorder.RecordUpstreamCall(capability, operation, err, time.Since(start))
}

// =============================================================================
// 🌐 Translation
// =============================================================================

// ListModels lists translation models.
func (f *Facade) ListModels(ctx context.Context) (*translator.ModelList, error) {
	p, err := f.translator.Client()
	if err != nil {
		return nil, err
	}
	start := time.Now()
	res, err := p.ListModels(ctx)
	f.observe(CapabilityTranslation, "list_models", start, err)
	return res, err
}

// Identify detects the language of text.
func (f *Facade) Identify(ctx context.Context, text string) (*translator.IdentifiedLanguages, error) {
	p, err := f.translator.Client()
	if err != nil {
		return nil, err
	}
	start := time.Now()
	res, err := p.Identify(ctx, text)
	f.observe(CapabilityTranslation, "identify", start, err)
	return res, err
}

// ListIdentifiableLanguages lists languages the identifier can detect.
func (f *Facade) ListIdentifiableLanguages(ctx context.Context) (*translator.IdentifiableLanguages, error) {
	p, err := f.translator.Client()
	if err != nil {
		return nil, err
	}
	start := time.Now()
	res, err := p.ListIdentifiableLanguages(ctx)
	f.observe(CapabilityTranslation, "list_identifiable_languages", start, err)
	return res, err
}

// Translate translates req.Text.
func (f *Facade) Translate(ctx context.Context, req translator.TranslateRequest) (*translator.TranslationResult, error) {
	p, err := f.translator.Client()
	if err != nil {
		return nil, err
	}
	start := time.Now()
	res, err := p.Translate(ctx, req)
	f.observe(CapabilityTranslation, "translate", start, err)
	return res, err
}

// =============================================================================
// 🔊 Speech
// =============================================================================

// ListVoices lists synthesis voices. Without speech credentials it returns
// FallbackVoice alone and no error.
func (f *Facade) ListVoices(ctx context.Context) (*speech.VoiceList, error) {
	p, err := f.speech.Client()
	if errors.Is(err, ErrMissingCredentials) {
		f.recorder.RecordFallbackVoices()
		return &speech.VoiceList{Voices: []speech.Voice{FallbackVoice}}, nil
	}
	start := time.Now()
	res, err := p.ListVoices(ctx)
	f.observe(CapabilitySpeech, "list_voices", start, err)
	return res, err
}

// Synthesize starts a synthesis. The caller must close the returned body.
func (f *Facade) Synthesize(ctx context.Context, params speech.SynthesizeParams) (*speech.Audio, error) {
	p, err := f.speech.Client()
	if err != nil {
		return nil, err
	}
	start := time.Now()
	audio, err := p.Synthesize(ctx, params)
	f.observe(CapabilitySpeech, "synthesize", start, err)
	return audio, err
}
