package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/BaSui01/voxbridge/speech"
)

// =============================================================================
// 🔊 语音接口 Handler
// =============================================================================

// streamBufferSize 音频转发缓冲区大小
const streamBufferSize = 32 << 10

// SpeechService 语音能力（由 service.Facade 实现）
type SpeechService interface {
	ListVoices(ctx context.Context) (*speech.VoiceList, error)
	Synthesize(ctx context.Context, params speech.SynthesizeParams) (*speech.Audio, error)
}

// AudioRecorder 记录转发的音频字节数
type AudioRecorder interface {
	RecordAudioBytes(contentType string, n int64)
}

// SpeechHandler 语音接口处理器
type SpeechHandler struct {
	service  SpeechService
	errors   *ErrorNormalizer
	recorder AudioRecorder
	logger   *zap.Logger
}

// NewSpeechHandler 创建语音处理器，recorder 可为 nil
func NewSpeechHandler(svc SpeechService, normalizer *ErrorNormalizer, recorder AudioRecorder, logger *zap.Logger) *SpeechHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SpeechHandler{
		service:  svc,
		errors:   normalizer,
		recorder: recorder,
		logger:   logger.With(zap.String("component", "speech_handler")),
	}
}

// HandleVoices 处理 GET /api/voces
func (h *SpeechHandler) HandleVoices(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListVoices(r.Context())
	if err != nil {
		h.errors.Write(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

// HandleSynthesize 处理 GET /api/sintetizar
// 查询参数 text、voice、accept 之外的参数原样转发给后端。
// 音频流按块写出并立即 Flush，上游请求绑定到入站请求的 context。
func (h *SpeechHandler) HandleSynthesize(w http.ResponseWriter, r *http.Request) {
	params := synthesizeParamsFromQuery(r.URL.Query())

	audio, err := h.service.Synthesize(r.Context(), params)
	if err != nil {
		h.errors.Write(w, err, h.logger)
		return
	}
	defer audio.Body.Close()

	w.Header().Set("Content-Type", audio.ContentType)
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no") // 禁用 nginx 缓冲
	w.WriteHeader(http.StatusOK)

	start := time.Now()
	n, err := copyFlush(w, audio.Body)
	if h.recorder != nil {
		h.recorder.RecordAudioBytes(audio.ContentType, n)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		// 头已写出，只能记录
		h.logger.Warn("audio stream interrupted",
			zap.Int64("bytes", n),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return
	}

	h.logger.Debug("audio streamed",
		zap.String("voice", params.Voice),
		zap.String("content_type", audio.ContentType),
		zap.Int64("bytes", n),
		zap.Duration("duration", time.Since(start)),
	)
}

func synthesizeParamsFromQuery(q url.Values) speech.SynthesizeParams {
	params := speech.SynthesizeParams{
		Text:   q.Get("text"),
		Voice:  q.Get("voice"),
		Accept: q.Get("accept"),
		Extra:  url.Values{},
	}
	for k, v := range q {
		switch k {
		case "text", "voice", "accept":
			continue
		}
		params.Extra[k] = v
	}
	return params
}

// copyFlush 将 src 按块复制到 w，每块写出后 Flush
func copyFlush(w http.ResponseWriter, src io.Reader) (int64, error) {
	rc := http.NewResponseController(w)
	buf := make([]byte, streamBufferSize)

	var written int64
	for {
		nr, rerr := src.Read(buf)
		if nr > 0 {
			nw, werr := w.Write(buf[:nr])
			written += int64(nw)
			if werr != nil {
				return written, werr
			}
			if nw != nr {
				return written, io.ErrShortWrite
			}
			if ferr := rc.Flush(); ferr != nil && !errors.Is(ferr, http.ErrNotSupported) {
				return written, ferr
			}
		}
		if rerr != nil {
			if rerr == io.EOF {
				return written, nil
			}
			return written, rerr
		}
	}
}
