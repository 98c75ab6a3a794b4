package handlers

import (
	"bytes"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/BaSui01/voxbridge/types"
)

// =============================================================================
// 🏠 首页与静态资源 Handler
// =============================================================================

// IndexHandler 首页处理器
type IndexHandler struct {
	tmpl   *template.Template
	title  string
	logger *zap.Logger
}

// indexData 首页模板数据
type indexData struct {
	Title      string
	HideHeader bool
}

// NewIndexHandler 从 templates 中解析 index.html
func NewIndexHandler(templates fs.FS, title string, logger *zap.Logger) (*IndexHandler, error) {
	tmpl, err := template.ParseFS(templates, "index.html")
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IndexHandler{
		tmpl:   tmpl,
		title:  title,
		logger: logger.With(zap.String("component", "index_handler")),
	}, nil
}

// HideHeader 仅当 hide_header 恰为 "true" 或 "1" 时隐藏页头
func HideHeader(value string) bool {
	return value == "true" || value == "1"
}

// hideHeaderParam 重复的 hide_header 视为数组，不隐藏页头
func hideHeaderParam(q url.Values) bool {
	values := q["hide_header"]
	return len(values) == 1 && HideHeader(values[0])
}

// HandleIndex 处理 GET /
func (h *IndexHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	data := indexData{
		Title:      h.title,
		HideHeader: hideHeaderParam(r.URL.Query()),
	}

	// 先渲染到缓冲区，模板出错时仍可返回 500
	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, data); err != nil {
		h.logger.Error("failed to render index", zap.Error(err))
		WriteErrorMessage(w, http.StatusInternalServerError, types.ErrInternalError, "failed to render page", h.logger)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// NewStaticHandler 返回挂载在 prefix 下的静态资源处理器
func NewStaticHandler(prefix string, assets fs.FS) http.Handler {
	return http.StripPrefix(prefix, http.FileServer(http.FS(assets)))
}
