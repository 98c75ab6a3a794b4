package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/BaSui01/voxbridge/translator"
	"github.com/BaSui01/voxbridge/types"
)

// =============================================================================
// 🌐 翻译接口 Handler
// =============================================================================

// TranslationService 翻译能力（由 service.Facade 实现）
type TranslationService interface {
	ListModels(ctx context.Context) (*translator.ModelList, error)
	Identify(ctx context.Context, text string) (*translator.IdentifiedLanguages, error)
	ListIdentifiableLanguages(ctx context.Context) (*translator.IdentifiableLanguages, error)
	Translate(ctx context.Context, req translator.TranslateRequest) (*translator.TranslationResult, error)
}

// TranslatorHandler 翻译接口处理器
type TranslatorHandler struct {
	service TranslationService
	errors  *ErrorNormalizer
	logger  *zap.Logger
}

// NewTranslatorHandler 创建翻译处理器
func NewTranslatorHandler(svc TranslationService, normalizer *ErrorNormalizer, logger *zap.Logger) *TranslatorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TranslatorHandler{
		service: svc,
		errors:  normalizer,
		logger:  logger.With(zap.String("component", "translator_handler")),
	}
}

// HandleModels 处理 GET /api/models
func (h *TranslatorHandler) HandleModels(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListModels(r.Context())
	if err != nil {
		h.errors.Write(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

// identifyRequest JSON 形式的 identify 请求体
type identifyRequest struct {
	Text string `json:"text"`
}

// HandleIdentify 处理 POST /api/identify
// 请求体为纯文本；Content-Type 为 JSON 时读取 {"text": "..."}。
func (h *TranslatorHandler) HandleIdentify(w http.ResponseWriter, r *http.Request) {
	body, err := ReadBody(w, r, h.logger)
	if err != nil {
		return
	}

	text := string(body)
	if IsJSONContent(r) && len(body) > 0 {
		var req identifyRequest
		if err := json.Unmarshal(body, &req); err != nil {
			WriteErrorMessage(w, http.StatusBadRequest, types.ErrInvalidRequest, "invalid JSON body", h.logger)
			return
		}
		text = req.Text
	}

	result, err := h.service.Identify(r.Context(), text)
	if err != nil {
		h.errors.Write(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

// HandleIdentifiableLanguages 处理 GET /api/identifiable_languages（请求体被忽略）
func (h *TranslatorHandler) HandleIdentifiableLanguages(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListIdentifiableLanguages(r.Context())
	if err != nil {
		h.errors.Write(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

// HandleTranslate 处理 POST /api/translate
func (h *TranslatorHandler) HandleTranslate(w http.ResponseWriter, r *http.Request) {
	var req translator.TranslateRequest
	if err := DecodeJSONBody(w, r, &req, h.logger); err != nil {
		return
	}

	result, err := h.service.Translate(r.Context(), req)
	if err != nil {
		h.errors.Write(w, err, h.logger)
		return
	}

	h.logger.Debug("translated",
		zap.String("source", req.Source),
		zap.String("target", req.Target),
		zap.String("model_id", req.ModelID),
		zap.Int("segments", len(req.Text)),
	)
	WriteJSON(w, http.StatusOK, result)
}
