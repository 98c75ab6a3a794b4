package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/BaSui01/voxbridge/service"
	"github.com/BaSui01/voxbridge/types"
)

// =============================================================================
// 🚨 错误规范化
// =============================================================================

// credentialMessages 缺失凭证时返回给前端的标题与描述
type credentialMessages struct {
	Title       string
	Description string
}

var credentialMessagesByLocale = map[string]credentialMessages{
	"en": {
		Title:       "Invalid Credentials",
		Description: "no valid credentials found for the IBM service",
	},
	"es": {
		Title:       "Credenciales Invalidas",
		Description: "no se pueden encontrar credenciales validas para el servicio de IBM.",
	},
}

// ErrorNormalizer 将门面返回的错误转换为统一的 *types.Error
type ErrorNormalizer struct {
	messages credentialMessages
}

// NewErrorNormalizer 创建错误规范化器，未知 locale 回退到 en
func NewErrorNormalizer(locale string) *ErrorNormalizer {
	msgs, ok := credentialMessagesByLocale[locale]
	if !ok {
		msgs = credentialMessagesByLocale["en"]
	}
	return &ErrorNormalizer{messages: msgs}
}

// Normalize 规范化错误：
//   - 缺失凭证 → 401 MISSING_CREDENTIALS，附带本地化标题与描述
//   - *types.Error → 原样返回
//   - 其他 → 500 INTERNAL_ERROR
func (n *ErrorNormalizer) Normalize(err error) *types.Error {
	if errors.Is(err, service.ErrMissingCredentials) {
		return types.NewError(types.ErrMissingCredentials, err.Error()).
			WithHTTPStatus(http.StatusUnauthorized).
			WithTitle(n.messages.Title).
			WithDescription(n.messages.Description).
			WithCause(err)
	}
	if apiErr, ok := types.AsError(err); ok {
		return apiErr
	}
	return types.NewError(types.ErrInternalError, "internal server error").
		WithCause(err).
		WithHTTPStatus(http.StatusInternalServerError)
}

// Write 规范化并写出错误响应
func (n *ErrorNormalizer) Write(w http.ResponseWriter, err error, logger *zap.Logger) {
	WriteError(w, n.Normalize(err), logger)
}
