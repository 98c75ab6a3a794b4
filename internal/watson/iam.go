package watson

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/BaSui01/voxbridge/internal/tlsutil"
	"github.com/BaSui01/voxbridge/types"
)

// DefaultIAMURL is the public IBM Cloud IAM token endpoint.
const DefaultIAMURL = "https://iam.cloud.ibm.com/identity/token"

// refreshMargin is how long before expiry a cached token is replaced.
const refreshMargin = 60 * time.Second

// iamFetchTimeout bounds one token exchange independently of any caller.
const iamFetchTimeout = 30 * time.Second

// Authenticator decorates outgoing requests with credentials.
type Authenticator interface {
	Authenticate(ctx context.Context, req *http.Request) error
}

// IAMAuthenticator exchanges an IBM Cloud API key for bearer tokens and
// reuses a token until shortly before it expires.
type IAMAuthenticator struct {
	apiKey string
	url    string
	client *http.Client
	now    func() time.Time

	group singleflight.Group

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewIAMAuthenticator creates an authenticator for apiKey. An empty iamURL
// selects DefaultIAMURL and a nil client selects a client with a 30s timeout.
func NewIAMAuthenticator(apiKey, iamURL string, client *http.Client) *IAMAuthenticator {
	if iamURL == "" {
		iamURL = DefaultIAMURL
	}
	if client == nil {
		client = tlsutil.HTTPClient(30 * time.Second)
	}
	return &IAMAuthenticator{
		apiKey: apiKey,
		url:    iamURL,
		client: client,
		now:    time.Now,
	}
}

type iamTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	Expiration  int64  `json:"expiration"`
}

// Authenticate sets a bearer Authorization header on req.
func (a *IAMAuthenticator) Authenticate(ctx context.Context, req *http.Request) error {
	token, err := a.Token(ctx)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}

// Token returns a valid access token, requesting a new one when the cached
// token is missing or about to expire. Concurrent callers share one
// exchange; each waits only as long as its own ctx allows.
func (a *IAMAuthenticator) Token(ctx context.Context) (string, error) {
	if token, ok := a.cached(); ok {
		return token, nil
	}

	ch := a.group.DoChan("token", func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), iamFetchTimeout)
		defer cancel()
		return a.fetch(fetchCtx)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", transportError("iam", ctx.Err())
	}
}

func (a *IAMAuthenticator) cached() (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.token != "" && a.now().Before(a.expiresAt.Add(-refreshMargin)) {
		return a.token, true
	}
	return "", false
}

// fetch performs the token exchange and stores the result.
func (a *IAMAuthenticator) fetch(ctx context.Context) (string, error) {
	form := url.Values{
		"grant_type": {"urn:ibm:params:oauth:grant-type:apikey"},
		"apikey":     {a.apiKey},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create IAM request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", transportError("iam", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", decodeError("iam", resp)
	}

	var tr iamTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", types.NewError(types.ErrUpstreamError, "invalid IAM token response").
			WithCause(err).
			WithHTTPStatus(http.StatusBadGateway).
			WithProvider("iam")
	}
	if tr.AccessToken == "" {
		return "", types.NewError(types.ErrUpstreamError, "IAM token response missing access_token").
			WithHTTPStatus(http.StatusBadGateway).
			WithProvider("iam")
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = tr.AccessToken
	switch {
	case tr.Expiration > 0:
		a.expiresAt = time.Unix(tr.Expiration, 0)
	case tr.ExpiresIn > 0:
		a.expiresAt = a.now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	default:
		a.expiresAt = a.now().Add(refreshMargin * 2)
	}
	return a.token, nil
}

// BearerAuthenticator sends a fixed, externally managed bearer token.
type BearerAuthenticator struct {
	Token string
}

// Authenticate sets the Authorization header.
func (b BearerAuthenticator) Authenticate(_ context.Context, req *http.Request) error {
	req.Header.Set("Authorization", "Bearer "+b.Token)
	return nil
}
