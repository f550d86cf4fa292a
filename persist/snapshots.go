package persist

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-storefront/cart"
	"github.com/jrsteele09/go-storefront/session"
	"github.com/jrsteele09/go-storefront/wishlist"
)

// The typed loaders validate the stored JSON at the boundary: a missing,
// corrupt or wrong-shaped value yields the type's empty default and a log
// line, never an error.

// LoadCart reads the persisted cart snapshot.
func LoadCart(s Store) []cart.LineItem {
	var items []cart.LineItem
	if !loadJSON(s, KeyCart, &items) {
		return nil
	}
	return items
}

// SaveCart writes the cart snapshot.
func SaveCart(s Store, items []cart.LineItem) {
	if items == nil {
		items = []cart.LineItem{}
	}
	saveJSON(s, KeyCart, items)
}

// LoadWishlist reads the persisted wishlist snapshot.
func LoadWishlist(s Store) []wishlist.Entry {
	var entries []wishlist.Entry
	if !loadJSON(s, KeyWishlist, &entries) {
		return nil
	}
	return entries
}

// SaveWishlist writes the wishlist snapshot.
func SaveWishlist(s Store, entries []wishlist.Entry) {
	if entries == nil {
		entries = []wishlist.Entry{}
	}
	saveJSON(s, KeyWishlist, entries)
}

// LoadSession reads the persisted auth session, falling back to anonymous.
// A stored session claiming authentication without a user is discarded.
func LoadSession(s Store) session.Session {
	var sess session.Session
	if !loadJSON(s, KeyAuth, &sess) {
		return session.Anonymous()
	}
	if sess.User == nil {
		return session.Anonymous()
	}
	return sess
}

// SaveSession writes the auth session snapshot.
func SaveSession(s Store, sess session.Session) {
	saveJSON(s, KeyAuth, sess)
}

// loadJSON decodes the value under key into out, reporting whether a valid
// value was found. Decode failures are logged and treated as absent.
func loadJSON(s Store, key string, out interface{}) bool {
	raw, err := s.Load(key)
	if err != nil {
		if !IsNotFound(err) {
			log.Warn().Err(err).Str("key", key).Msg("Failed to read persisted state")
		}
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Discarding corrupt persisted state")
		return false
	}
	return true
}

// saveJSON encodes value under key. Failures are logged and swallowed so a
// full or broken storage never blocks a state transition.
func saveJSON(s Store, key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to encode state snapshot")
		return
	}
	if err := s.Save(key, raw); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to persist state snapshot")
	}
}
