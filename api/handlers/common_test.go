package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BaSui01/voxbridge/types"
)

// =============================================================================
// 🧪 Common 函数测试
// =============================================================================

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name       string
		data       any
		wantStatus int
	}{
		{
			name:       "simple object",
			data:       map[string]string{"message": "hello"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "array",
			data:       []int{1, 2, 3},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteJSON(w, tt.wantStatus, tt.data)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
			assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
		})
	}
}

func TestWriteSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	w.Header().Set("X-Request-ID", "req-1")

	WriteSuccess(w, map[string]string{"key": "value"})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Data)
	assert.Nil(t, resp.Error)
	assert.Equal(t, "req-1", resp.RequestID)
	assert.False(t, resp.Timestamp.IsZero())
}

func TestWriteError(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name           string
		err            *types.Error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "invalid request",
			err:            types.NewError(types.ErrInvalidRequest, "invalid JSON body"),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   string(types.ErrInvalidRequest),
		},
		{
			name:           "missing credentials",
			err:            types.NewError(types.ErrMissingCredentials, "speech: missing service credentials"),
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   string(types.ErrMissingCredentials),
		},
		{
			name:           "upstream without status",
			err:            types.NewError(types.ErrUpstreamError, "bad gateway"),
			expectedStatus: http.StatusBadGateway,
			expectedCode:   string(types.ErrUpstreamError),
		},
		{
			name:           "upstream with remote status",
			err:            types.NewError(types.ErrUpstreamError, "Model not found").WithHTTPStatus(http.StatusNotFound),
			expectedStatus: http.StatusNotFound,
			expectedCode:   string(types.ErrUpstreamError),
		},
		{
			name:           "upstream timeout",
			err:            types.NewError(types.ErrUpstreamTimeout, "timed out"),
			expectedStatus: http.StatusGatewayTimeout,
			expectedCode:   string(types.ErrUpstreamTimeout),
		},
		{
			name:           "internal error",
			err:            types.NewError(types.ErrInternalError, "boom"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   string(types.ErrInternalError),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err, logger)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var resp Response
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.False(t, resp.Success)
			assert.Nil(t, resp.Data)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.expectedCode, resp.Error.Code)
			assert.Equal(t, tt.expectedStatus, resp.Error.Status)
			assert.NotEmpty(t, resp.Error.Message)
		})
	}
}

func TestWriteError_TitleAndDescription(t *testing.T) {
	w := httptest.NewRecorder()
	w.Header().Set("X-Request-ID", "abc")
	err := types.NewError(types.ErrMissingCredentials, "missing").
		WithHTTPStatus(http.StatusUnauthorized).
		WithTitle("Invalid Credentials").
		WithDescription("no valid credentials found for the IBM service")

	WriteError(w, err, nil)

	var raw map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&raw))
	assert.Equal(t, false, raw["success"])
	assert.Equal(t, "abc", raw["request_id"])

	info := raw["error"].(map[string]any)
	assert.Equal(t, "MISSING_CREDENTIALS", info["code"])
	assert.Equal(t, float64(401), info["status"])
	assert.Equal(t, "Invalid Credentials", info["title"])
	assert.Equal(t, "no valid credentials found for the IBM service", info["description"])
}

func TestDecodeJSONBody(t *testing.T) {
	logger := zap.NewNop()

	type TestStruct struct {
		Name  string `json:"name"`
		Value int    `json:"value"`
	}

	tests := []struct {
		name       string
		body       string
		wantErr    bool
		wantStatus int
		checkFunc  func(*testing.T, *TestStruct)
	}{
		{
			name: "valid JSON",
			body: `{"name":"test","value":123}`,
			checkFunc: func(t *testing.T, ts *TestStruct) {
				assert.Equal(t, "test", ts.Name)
				assert.Equal(t, 123, ts.Value)
			},
		},
		{
			name: "unknown field is tolerated",
			body: `{"name":"test","unknown":"field"}`,
			checkFunc: func(t *testing.T, ts *TestStruct) {
				assert.Equal(t, "test", ts.Name)
			},
		},
		{
			name: "empty body",
			body: ``,
			checkFunc: func(t *testing.T, ts *TestStruct) {
				assert.Equal(t, TestStruct{}, *ts)
			},
		},
		{
			name:       "invalid JSON",
			body:       `{"name":"test",}`,
			wantErr:    true,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString(tt.body))

			var result TestStruct
			err := DecodeJSONBody(w, r, &result, logger)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantStatus, w.Code)
				return
			}
			assert.NoError(t, err)
			if tt.checkFunc != nil {
				tt.checkFunc(t, &result)
			}
		})
	}
}

func TestDecodeJSONBody_TooLarge(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(`{"name":"`+strings.Repeat("x", 100)+`"}`))
	r.Body = http.MaxBytesReader(w, r.Body, 10)

	var dst map[string]any
	err := DecodeJSONBody(w, r, &dst, zap.NewNop())
	require.Error(t, err)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestIsJSONContent(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		want        bool
	}{
		{name: "application/json", contentType: "application/json", want: true},
		{name: "with charset", contentType: "application/json; charset=utf-8", want: true},
		{name: "uppercase charset", contentType: "application/json; charset=UTF-8", want: true},
		{name: "extra whitespace", contentType: "application/json;  charset=utf-8", want: true},
		{name: "text/plain", contentType: "text/plain", want: false},
		{name: "empty", contentType: "", want: false},
		{name: "malformed", contentType: ";;", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/test", nil)
			r.Header.Set("Content-Type", tt.contentType)
			assert.Equal(t, tt.want, IsJSONContent(r))
		})
	}
}
