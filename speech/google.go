package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/googleapis/gax-go/v2"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/BaSui01/voxbridge/types"
)

// googleClient is the subset of *texttospeech.Client used by GoogleProvider.
type googleClient interface {
	ListVoices(ctx context.Context, req *texttospeechpb.ListVoicesRequest, opts ...gax.CallOption) (*texttospeechpb.ListVoicesResponse, error)
	SynthesizeSpeech(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest, opts ...gax.CallOption) (*texttospeechpb.SynthesizeSpeechResponse, error)
	Close() error
}

// GoogleProvider implements Provider on Google Cloud Text-to-Speech.
type GoogleProvider struct {
	cfg    GoogleConfig
	client googleClient
	logger *zap.Logger
}

// NewGoogleProvider dials Google Cloud Text-to-Speech. Credentials come from
// cfg.CredentialsFile when set, otherwise from application default credentials.
func NewGoogleProvider(ctx context.Context, cfg GoogleConfig, logger *zap.Logger) (*GoogleProvider, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	client, err := texttospeech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create TTS client: %w", err)
	}
	return newGoogleProvider(cfg, client, logger), nil
}

func newGoogleProvider(cfg GoogleConfig, client googleClient, logger *zap.Logger) *GoogleProvider {
	if cfg.DefaultVoice == "" {
		cfg.DefaultVoice = DefaultGoogleConfig().DefaultVoice
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GoogleProvider{
		cfg:    cfg,
		client: client,
		logger: logger.With(zap.String("component", "speech"), zap.String("provider", "google")),
	}
}

// Name returns the provider name.
func (p *GoogleProvider) Name() string { return "google-speech" }

// Close releases the gRPC connection.
func (p *GoogleProvider) Close() error {
	return p.client.Close()
}

// ListVoices lists the available voices.
func (p *GoogleProvider) ListVoices(ctx context.Context) (*VoiceList, error) {
	if p.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.Timeout)
		defer cancel()
	}

	resp, err := p.client.ListVoices(ctx, &texttospeechpb.ListVoicesRequest{})
	if err != nil {
		return nil, p.convertError(err)
	}

	out := &VoiceList{Voices: make([]Voice, 0, len(resp.GetVoices()))}
	for _, v := range resp.GetVoices() {
		language := ""
		if langs := v.GetLanguageCodes(); len(langs) > 0 {
			language = langs[0]
		}
		gender := strings.ToLower(v.GetSsmlGender().String())
		out.Voices = append(out.Voices, Voice{
			Name:        v.GetName(),
			Language:    language,
			Gender:      gender,
			Description: fmt.Sprintf("%s: %s %s voice.", v.GetName(), language, gender),
		})
	}
	return out, nil
}

// Synthesize converts text to speech. Google returns the whole clip in one
// message, so Body reads from memory.
func (p *GoogleProvider) Synthesize(ctx context.Context, params SynthesizeParams) (*Audio, error) {
	encoding, contentType, err := googleEncoding(params.Accept)
	if err != nil {
		return nil, err
	}

	voice := params.Voice
	if voice == "" {
		voice = p.cfg.DefaultVoice
	}

	audioCfg := &texttospeechpb.AudioConfig{AudioEncoding: encoding}
	if v := params.Extra.Get("speaking_rate"); v != "" {
		if rate, err := strconv.ParseFloat(v, 64); err == nil {
			audioCfg.SpeakingRate = rate
		}
	}
	if v := params.Extra.Get("pitch"); v != "" {
		if pitch, err := strconv.ParseFloat(v, 64); err == nil {
			audioCfg.Pitch = pitch
		}
	}

	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: params.Text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: languageFromVoice(voice),
			Name:         voice,
		},
		AudioConfig: audioCfg,
	}

	resp, err := p.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return nil, p.convertError(err)
	}

	p.logger.Debug("synthesized",
		zap.String("voice", voice),
		zap.String("content_type", contentType),
		zap.Int("bytes", len(resp.GetAudioContent())),
	)

	return &Audio{
		ContentType: contentType,
		Body:        io.NopCloser(bytes.NewReader(resp.GetAudioContent())),
	}, nil
}

// googleEncoding maps an accept media type onto a Google audio encoding and
// the content type of the produced audio.
func googleEncoding(accept string) (texttospeechpb.AudioEncoding, string, error) {
	if accept == "" {
		return texttospeechpb.AudioEncoding_OGG_OPUS, DefaultAccept, nil
	}
	mediaType, _, err := mime.ParseMediaType(accept)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(accept))
	}

	switch mediaType {
	case "audio/ogg", "audio/webm":
		return texttospeechpb.AudioEncoding_OGG_OPUS, DefaultAccept, nil
	case "audio/mp3", "audio/mpeg":
		return texttospeechpb.AudioEncoding_MP3, "audio/mpeg", nil
	case "audio/wav", "audio/l16":
		return texttospeechpb.AudioEncoding_LINEAR16, "audio/wav", nil
	case "audio/mulaw", "audio/basic":
		return texttospeechpb.AudioEncoding_MULAW, "audio/basic", nil
	case "audio/alaw":
		return texttospeechpb.AudioEncoding_ALAW, "audio/alaw", nil
	}
	return texttospeechpb.AudioEncoding_AUDIO_ENCODING_UNSPECIFIED, "",
		types.NewError(types.ErrInvalidRequest, "unsupported audio format: "+accept).
			WithHTTPStatus(http.StatusBadRequest).
			WithProvider("google-speech")
}

// languageFromVoice extracts "en-US" from a voice name like "en-US-Standard-C".
func languageFromVoice(voice string) string {
	parts := strings.SplitN(voice, "-", 3)
	if len(parts) < 2 {
		return ""
	}
	return parts[0] + "-" + parts[1]
}

func (p *GoogleProvider) convertError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	st, ok := status.FromError(err)
	if !ok {
		return types.NewError(types.ErrUpstreamError, "google-speech request failed").
			WithCause(err).
			WithHTTPStatus(http.StatusInternalServerError).
			WithProvider(p.Name())
	}

	code := types.ErrUpstreamError
	if st.Code() == codes.DeadlineExceeded {
		code = types.ErrUpstreamTimeout
	}
	return types.NewError(code, st.Message()).
		WithCause(err).
		WithHTTPStatus(runtime.HTTPStatusFromCode(st.Code())).
		WithProvider(p.Name())
}
