package watson

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/BaSui01/voxbridge/internal/tlsutil"
	"github.com/BaSui01/voxbridge/types"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// Client is a minimal REST client for IBM Watson services.
type Client struct {
	name       string
	baseURL    string
	auth       Authenticator
	httpClient *http.Client
	headers    http.Header
	query      url.Values
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the overall request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient = &http.Client{Timeout: d, Transport: c.httpClient.Transport}
	}
}

// WithDefaultHeader adds a header sent with every request.
func WithDefaultHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Set(key, value)
	}
}

// WithDefaultQuery adds a query parameter sent with every request.
func WithDefaultQuery(key, value string) Option {
	return func(c *Client) {
		c.query.Set(key, value)
	}
}

// NewClient creates a client named name (used in errors and spans) rooted at baseURL.
func NewClient(name, baseURL string, auth Authenticator, opts ...Option) *Client {
	c := &Client{
		name:       name,
		baseURL:    strings.TrimRight(baseURL, "/"),
		auth:       auth,
		httpClient: tlsutil.HTTPClient(0),
		headers:    make(http.Header),
		query:      make(url.Values),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the client name.
func (c *Client) Name() string { return c.name }

// Request describes a single call.
type Request struct {
	Method      string
	Path        string
	Query       url.Values
	Body        io.Reader
	ContentType string
	Accept      string
}

// Do executes req. Responses with status >= 400 are converted into a
// *types.Error carrying the remote status; the caller owns the body of a
// successful response.
func (c *Client) Do(ctx context.Context, req Request) (*http.Response, error) {
	ctx, span := otel.Tracer("voxbridge/watson").Start(ctx, c.name+" "+req.Method+" "+req.Path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("watson.service", c.name),
			attribute.String("http.request.method", req.Method),
			attribute.String("url.path", req.Path),
		),
	)
	defer span.End()

	q := make(url.Values, len(c.query)+len(req.Query))
	for k, v := range c.query {
		q[k] = v
	}
	for k, v := range req.Query {
		q[k] = v
	}

	endpoint := c.baseURL + req.Path
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, endpoint, req.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range c.headers {
		httpReq.Header[k] = v
	}
	if req.ContentType != "" {
		httpReq.Header.Set("Content-Type", req.ContentType)
	}
	if req.Accept != "" {
		httpReq.Header.Set("Accept", req.Accept)
	}
	if c.auth != nil {
		if err := c.auth.Authenticate(ctx, httpReq); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "authentication failed")
			return nil, err
		}
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport error")
		return nil, transportError(c.name, err)
	}
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		apiErr := decodeError(c.name, resp)
		span.SetStatus(codes.Error, apiErr.Message)
		return nil, apiErr
	}

	return resp, nil
}

// DoJSON executes a request with an optional JSON body and decodes a JSON response into out.
func (c *Client) DoJSON(ctx context.Context, method, path string, query url.Values, in, out any) error {
	req := Request{
		Method: method,
		Path:   path,
		Query:  query,
		Accept: "application/json",
	}
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		req.Body = bytes.NewReader(payload)
		req.ContentType = "application/json"
	}
	return c.decode(ctx, req, out)
}

// DoText posts a plain text body and decodes a JSON response into out.
func (c *Client) DoText(ctx context.Context, path, text string, out any) error {
	return c.decode(ctx, Request{
		Method:      http.MethodPost,
		Path:        path,
		Body:        strings.NewReader(text),
		ContentType: "text/plain",
		Accept:      "application/json",
	}, out)
}

// Capture returns a decode target for DoJSON and DoText that unmarshals the
// response into value and also stores a copy of the body in body.
func Capture(value any, body *json.RawMessage) json.Unmarshaler {
	return &capture{value: value, body: body}
}

type capture struct {
	value any
	body  *json.RawMessage
}

func (c *capture) UnmarshalJSON(data []byte) error {
	*c.body = append(json.RawMessage(nil), data...)
	return json.Unmarshal(data, c.value)
}

func (c *Client) decode(ctx context.Context, req Request, out any) error {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return types.NewError(types.ErrUpstreamError, "invalid response body").
			WithCause(err).
			WithHTTPStatus(http.StatusBadGateway).
			WithProvider(c.name)
	}
	return nil
}

// errorBody covers the error shapes returned by Watson services and IAM.
type errorBody struct {
	Code            any    `json:"code"`
	Error           string `json:"error"`
	ErrorMessage    string `json:"errorMessage"`
	Message         string `json:"message"`
	Description     string `json:"description"`
	CodeDescription string `json:"code_description"`
}

func decodeError(provider string, resp *http.Response) *types.Error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	message := ""
	description := ""
	var body errorBody
	if json.Unmarshal(raw, &body) == nil {
		for _, m := range []string{body.Error, body.ErrorMessage, body.Message} {
			if m != "" {
				message = m
				break
			}
		}
		description = body.Description
		if description == "" {
			description = body.CodeDescription
		}
	}
	if message == "" {
		message = strings.TrimSpace(string(raw))
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	return types.NewError(types.ErrUpstreamError, message).
		WithHTTPStatus(resp.StatusCode).
		WithDescription(description).
		WithProvider(provider)
}

func transportError(provider string, err error) *types.Error {
	code := types.ErrUpstreamError
	if errors.Is(err, context.DeadlineExceeded) {
		code = types.ErrUpstreamTimeout
	}
	return types.NewError(code, provider+" request failed").
		WithCause(err).
		WithHTTPStatus(http.StatusInternalServerError).
		WithProvider(provider)
}
