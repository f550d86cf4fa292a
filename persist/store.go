// Package persist mirrors the in-memory store state to durable local
// storage. The mirror is best-effort and always lagging: read and write
// failures are logged and swallowed, never surfaced to the caller.
package persist

import (
	internalerrors "github.com/jrsteele09/go-storefront/internal/errors"
)

// Storage keys shared with the backend's web client.
const (
	KeyCart        = "cart"
	KeyWishlist    = "wishlist"
	KeyAuth        = "auth"
	KeyAccessToken = "accessToken"
)

// Store is the durable key-value storage contract. Load returns
// internal/errors.ErrNotFound for missing keys.
type Store interface {
	Load(key string) ([]byte, error)
	Save(key string, value []byte) error
	Delete(key string) error
}

// IsNotFound reports whether err marks a missing key.
func IsNotFound(err error) bool {
	return internalerrors.Is(err, internalerrors.ErrNotFound)
}
