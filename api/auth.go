package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	internalerrors "github.com/jrsteele09/go-storefront/internal/errors"
	"github.com/jrsteele09/go-storefront/session"
)

type loginResponse struct {
	User        *session.User `json:"user"`
	Token       string        `json:"token"`
	AccessToken string        `json:"accessToken"`
}

func (r loginResponse) token() string {
	if r.Token != "" {
		return r.Token
	}
	return r.AccessToken
}

// Login authenticates against the backend, stores the returned access
// token and arms the proactive refresh timer.
func (c *Client) Login(ctx context.Context, email, password string) (*session.User, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	respBody, err := c.do(ctx, request{method: http.MethodPost, path: "/auth/login", body: body})
	if err != nil {
		return nil, err
	}

	var result loginResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	if tok := result.token(); tok != "" {
		c.tokens.SetToken(tok)
		if _, err := c.scheduler.Schedule(tok); err != nil {
			log.Warn().Err(err).Msg("Could not schedule refresh for login token")
		}
	}
	return result.User, nil
}

// Register creates an account and, when the backend logs the new user
// straight in, stores the returned token like Login does.
func (c *Client) Register(ctx context.Context, name, email, password string) (*session.User, error) {
	body, err := json.Marshal(map[string]string{"name": name, "email": email, "password": password})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	respBody, err := c.do(ctx, request{method: http.MethodPost, path: "/auth/register", body: body})
	if err != nil {
		return nil, err
	}

	var result loginResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	if tok := result.token(); tok != "" {
		c.tokens.SetToken(tok)
		if _, err := c.scheduler.Schedule(tok); err != nil {
			log.Warn().Err(err).Msg("Could not schedule refresh for registration token")
		}
	}
	return result.User, nil
}

// Refresh exchanges the refresh cookie for a fresh access token, stores it
// and re-arms the refresh timer. It bypasses the 401 retry pipeline: a
// refresh must never trigger another refresh.
func (c *Client) Refresh(ctx context.Context) error {
	resp, err := c.attempt(ctx, request{method: http.MethodPost, path: "/auth/refresh"})
	if err != nil {
		return internalerrors.Wrapf(err, "refresh request failed")
	}
	if !resp.ok() {
		return internalerrors.Wrapf(internalerrors.ErrRefreshFailed, "%s", statusError(resp).Error())
	}

	parsed := gjson.ParseBytes(resp.body)
	tok := parsed.Get("token").String()
	if tok == "" {
		tok = parsed.Get("accessToken").String()
	}
	if tok == "" {
		return internalerrors.Wrapf(internalerrors.ErrRefreshFailed, "no token in refresh response")
	}

	c.tokens.SetToken(tok)
	if _, err := c.scheduler.Schedule(tok); err != nil {
		log.Warn().Err(err).Msg("Could not schedule refresh for refreshed token")
	}
	return nil
}

// Logout tells the backend to revoke the session (best effort), clears the
// stored token and cancels any pending refresh.
func (c *Client) Logout(ctx context.Context) {
	if _, err := c.do(ctx, request{method: http.MethodPost, path: "/auth/logout"}); err != nil {
		log.Debug().Err(err).Msg("Logout request failed, clearing local session anyway")
	}
	c.tokens.ClearToken()
	c.scheduler.Cancel()
}

// ScheduleRefresh arms the refresh timer for an already-stored token, for
// use at startup when a previous session's token was persisted.
func (c *Client) ScheduleRefresh() error {
	tok, ok := c.tokens.Token()
	if !ok {
		return internalerrors.ErrNoToken
	}
	_, err := c.scheduler.Schedule(tok)
	return err
}

// CancelRefresh stops the refresh timer without touching the stored token.
func (c *Client) CancelRefresh() {
	c.scheduler.Cancel()
}

// backgroundRefresh is the timer callback.
func (c *Client) backgroundRefresh() error {
	return c.Refresh(context.Background())
}

// forceLogout clears the session after a terminal background refresh
// failure and hands control to the owner's callback.
func (c *Client) forceLogout() {
	c.tokens.ClearToken()
	c.scheduler.Cancel()
	if c.onAuthExpired != nil {
		c.onAuthExpired()
	}
}
