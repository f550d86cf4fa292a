package persist

import (
	"strings"

	"github.com/rs/zerolog/log"
)

// Tokens provides access to the persisted bearer token. The raw token
// string is stored as-is under KeyAccessToken, matching the web client.
type Tokens struct {
	store Store
}

// NewTokens creates a token accessor over the given store.
func NewTokens(store Store) *Tokens {
	return &Tokens{store: store}
}

// Token returns the stored access token, if any.
func (t *Tokens) Token() (string, bool) {
	raw, err := t.store.Load(KeyAccessToken)
	if err != nil {
		if !IsNotFound(err) {
			log.Warn().Err(err).Msg("Failed to read access token")
		}
		return "", false
	}
	token := strings.TrimSpace(string(raw))
	if token == "" {
		return "", false
	}
	return token, true
}

// SetToken stores a new access token, superseding any previous one.
func (t *Tokens) SetToken(token string) {
	if err := t.store.Save(KeyAccessToken, []byte(token)); err != nil {
		log.Warn().Err(err).Msg("Failed to persist access token")
	}
}

// ClearToken removes the stored access token.
func (t *Tokens) ClearToken() {
	if err := t.store.Delete(KeyAccessToken); err != nil && !IsNotFound(err) {
		log.Warn().Err(err).Msg("Failed to clear access token")
	}
}
