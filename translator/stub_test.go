package translator

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// stubWatson is a fake Watson translator plus IAM endpoint.
type stubWatson struct {
	*httptest.Server

	mu       sync.Mutex
	requests []*http.Request
	bodies   []string
	status   int
}

func newStubWatson(t *testing.T) *stubWatson {
	t.Helper()
	s := &stubWatson{}
	mux := http.NewServeMux()
	mux.HandleFunc("/identity/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"stub-token","expires_in":3600}`))
	})
	mux.HandleFunc("/", s.serve)
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

func (s *stubWatson) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	s.mu.Lock()
	s.requests = append(s.requests, r.Clone(r.Context()))
	s.bodies = append(s.bodies, string(body))
	status := s.status
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if status >= 400 {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"code":` + strconv.Itoa(status) + `,"error":"stub failure"}`))
		return
	}

	switch r.URL.Path {
	case "/v3/models":
		_, _ = w.Write([]byte(`{"models":[{"model_id":"en-es","source":"en","target":"es","base_model_id":"","domain":"general","customizable":true,"default":true,"owner":"","status":"available","name":"en-es"}]}`))
	case "/v3/identify":
		lang := "en"
		if strings.Contains(string(body), "hola") {
			lang = "es"
		}
		_, _ = w.Write([]byte(`{"languages":[{"language":"` + lang + `","confidence":0.9},{"language":"pt","confidence":0.05}]}`))
	case "/v3/identifiable_languages":
		_, _ = w.Write([]byte(`{"languages":[{"language":"en","name":"English"},{"language":"es","name":"Spanish"}]}`))
	case "/v3/translate":
		var req struct {
			Text []string `json:"text"`
		}
		_ = json.Unmarshal(body, &req)
		out := TranslationResult{WordCount: len(req.Text), CharacterCount: 0}
		for _, text := range req.Text {
			out.CharacterCount += len(text)
			out.Translations = append(out.Translations, Translation{Translation: "[es] " + text})
		}
		_ = json.NewEncoder(w).Encode(out)
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":404,"error":"Not Found"}`))
	}
}

func (s *stubWatson) setStatus(status int) {
	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
}

func (s *stubWatson) last() (*http.Request, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return nil, ""
	}
	return s.requests[len(s.requests)-1], s.bodies[len(s.bodies)-1]
}

func (s *stubWatson) config() WatsonConfig {
	cfg := DefaultWatsonConfig()
	cfg.APIKey = "test-key"
	cfg.URL = s.URL
	cfg.IAMURL = s.URL + "/identity/token"
	return cfg
}
