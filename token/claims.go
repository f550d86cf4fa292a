// Package token handles the client side of the access-token lifecycle:
// decoding the expiry claim of a stored bearer token and scheduling the
// proactive refresh ahead of expiry.
package token

import (
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"

	internalerrors "github.com/jrsteele09/go-storefront/internal/errors"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Expiry decodes the exp claim of a JWT without verifying its signature.
// The server is the trust boundary; the client only needs the expiry to
// time its refresh.
func Expiry(rawToken string) (time.Time, error) {
	unverifiedToken, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := unverifiedToken.Claims.(jwtlib.MapClaims)
	if !ok {
		return time.Time{}, internalerrors.ErrInvalidToken
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return time.Time{}, internalerrors.ErrMissingExpiry
	}

	return time.Unix(int64(exp), 0), nil
}
