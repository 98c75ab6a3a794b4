package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"
)

var testTemplates = fstest.MapFS{
	"index.html": &fstest.MapFile{Data: []byte(
		`<title>{{.Title}}</title>{{if not .HideHeader}}<header id="header"></header>{{end}}`)},
}

func TestHideHeader(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"1", true},
		{"", false},
		{"false", false},
		{"0", false},
		{"TRUE", false},
		{"yes", false},
		{" true", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, HideHeader(tt.value))
		})
	}
}

func TestProperty_HideHeaderOnlyForTrueOrOne(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		v := rapid.String().Draw(rt, "hide_header")
		assert.Equal(rt, v == "true" || v == "1", HideHeader(v))
	})
}

func TestHideHeaderParam_RepeatedKey(t *testing.T) {
	assert.True(t, hideHeaderParam(url.Values{"hide_header": {"1"}}))
	assert.False(t, hideHeaderParam(url.Values{"hide_header": {"true", "x"}}))
	assert.False(t, hideHeaderParam(url.Values{}))
}

func TestIndexHandler_HandleIndex(t *testing.T) {
	h, err := NewIndexHandler(testTemplates, "Language Translator", zap.NewNop())
	require.NoError(t, err)

	tests := []struct {
		query      string
		wantHeader bool
	}{
		{query: "", wantHeader: true},
		{query: "?hide_header=true", wantHeader: false},
		{query: "?hide_header=1", wantHeader: false},
		{query: "?hide_header=0", wantHeader: true},
		{query: "?hide_header=yes", wantHeader: true},
		{query: "?hide_header=true&hide_header=x", wantHeader: true},
		{query: "?hide_header=true&hide_header=true", wantHeader: true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.HandleIndex(w, httptest.NewRequest(http.MethodGet, "/"+tt.query, nil))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
			assert.Contains(t, w.Body.String(), "<title>Language Translator</title>")
			assert.Equal(t, tt.wantHeader, strings.Contains(w.Body.String(), `id="header"`))
		})
	}
}

func TestNewIndexHandler_MissingTemplate(t *testing.T) {
	_, err := NewIndexHandler(fstest.MapFS{}, "x", nil)
	assert.Error(t, err)
}

func TestStaticHandler(t *testing.T) {
	assets := fstest.MapFS{
		"js/app.js": &fstest.MapFile{Data: []byte("console.log(1)")},
	}
	h := NewStaticHandler("/static/", assets)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/js/app.js", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	body, _ := io.ReadAll(w.Body)
	assert.Equal(t, "console.log(1)", string(body))

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/missing.js", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
