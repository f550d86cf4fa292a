// Package api is the typed HTTP client for the storefront REST backend.
// It builds request URLs with query parameters and a cache-busting
// timestamp, attaches the stored bearer token, recovers once from a 401 by
// refreshing the token, and keeps the proactive refresh timer armed.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-storefront/internal/config"
	"github.com/jrsteele09/go-storefront/token"
)

// TokenStore provides access to the persisted bearer token.
type TokenStore interface {
	Token() (string, bool)
	SetToken(token string)
	ClearToken()
}

// Client talks to the storefront REST backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenStore
	scheduler  *token.Scheduler

	// onAuthExpired runs after a terminal refresh failure has cleared the
	// session, so the owner can drop back to an anonymous entry point.
	onAuthExpired func()
}

// NewClient creates an API client. The refresh cookie issued by the
// backend on login is kept in a cookie jar and sent back on refresh calls.
func NewClient(cfg config.ClientConfig, tokens TokenStore, onAuthExpired func()) *Client {
	jar, _ := cookiejar.New(nil)
	c := &Client{
		baseURL: strings.TrimRight(cfg.GetAPIBaseURL(), "/"),
		httpClient: &http.Client{
			Timeout: cfg.GetRequestTimeout(),
			Jar:     jar,
		},
		tokens:        tokens,
		onAuthExpired: onAuthExpired,
	}
	c.scheduler = token.NewScheduler(c.backgroundRefresh, c.forceLogout, cfg.GetRefreshLeadFactor(), cfg.GetMinRefreshLead())
	return c
}

// request describes one logical API call. The pipeline may replay it, so
// the body is held as bytes rather than a one-shot reader.
type request struct {
	method  string
	path    string
	params  map[string]string
	body    []byte
	headers map[string]string
}

// response is a fully read HTTP response. requestID echoes the
// X-Request-ID header the attempt sent, empty for GETs.
type response struct {
	status     int
	statusText string
	header     http.Header
	body       []byte
	requestID  string
}

func (r *response) ok() bool {
	return r.status >= 200 && r.status < 300
}

// do runs the two-state request pipeline: one attempt, and on a 401 a
// single token refresh followed by a single replay. A failed refresh
// surfaces the original 401. Bounded by construction, never recursive.
func (c *Client) do(ctx context.Context, req request) ([]byte, error) {
	resp, err := c.attempt(ctx, req)
	if err != nil {
		return nil, err
	}

	if resp.status == http.StatusUnauthorized {
		if refreshErr := c.Refresh(ctx); refreshErr == nil {
			resp, err = c.attempt(ctx, req)
			if err != nil {
				return nil, err
			}
		}
	}

	if !resp.ok() {
		statusErr := statusError(resp)
		log.Error().Str("method", req.method).Str("path", req.path).Int("status", resp.status).Str("requestId", resp.requestID).Msg(statusErr.Message)
		return nil, statusErr
	}
	return resp.body, nil
}

// attempt performs a single HTTP exchange. Transport failures come back as
// *NetworkError; any HTTP response, success or not, comes back as a response.
func (c *Client) attempt(ctx context.Context, req request) (*response, error) {
	requestURL := c.buildURL(req.path, req.params)

	var body io.Reader
	if req.body != nil {
		body = bytes.NewReader(req.body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, requestURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if tok, ok := c.tokens.Token(); ok {
		httpReq.Header.Set("Authorization", "Bearer "+tok)
	}
	requestID := ""
	if req.method != http.MethodGet {
		requestID = uuid.New().String()
		httpReq.Header.Set("X-Request-ID", requestID)
	}
	for k, v := range req.headers {
		httpReq.Header.Set(k, v)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.Error().Err(err).Str("url", requestURL).Str("requestId", requestID).Msg("HTTP request failed (network)")
		return nil, &NetworkError{URL: requestURL, Err: err}
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &NetworkError{URL: requestURL, Err: err}
	}

	return &response{
		status:     httpResp.StatusCode,
		statusText: http.StatusText(httpResp.StatusCode),
		header:     httpResp.Header,
		body:       respBody,
		requestID:  requestID,
	}, nil
}

// buildURL joins the base URL and path and encodes the query parameters,
// omitting empty values and appending a cache-busting timestamp so
// intermediate caches never serve a stale GET.
func (c *Client) buildURL(path string, params map[string]string) string {
	base := c.baseURL
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	values := url.Values{}
	for k, v := range params {
		if v == "" {
			continue
		}
		values.Set(k, v)
	}
	values.Set("_ts", strconv.FormatInt(token.NowTimeFunc().UnixMilli(), 10))

	return base + path + "?" + values.Encode()
}
