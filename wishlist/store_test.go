package wishlist_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-storefront/wishlist"
)

func TestToggleAddsWhenAbsent(t *testing.T) {
	s := wishlist.NewStore(nil)

	s.Toggle(wishlist.Entry{ID: "p1", Title: "A", Price: 2})

	require.True(t, s.Contains("p1"))
	require.Equal(t, []wishlist.Entry{{ID: "p1", Title: "A", Price: 2}}, s.Entries())
}

func TestToggleRemovesWhenPresent(t *testing.T) {
	s := wishlist.NewStore(nil)
	s.Toggle(wishlist.Entry{ID: "p1"})
	s.Toggle(wishlist.Entry{ID: "p2"})

	s.Toggle(wishlist.Entry{ID: "p1"})

	assert.False(t, s.Contains("p1"))
	assert.True(t, s.Contains("p2"))
}

func TestToggleTwiceRestoresPriorState(t *testing.T) {
	s := wishlist.NewStore([]wishlist.Entry{
		{ID: "p1", Title: "A", Price: 1, Rating: 4.5},
		{ID: "p2", Title: "B", Price: 2},
	})
	before := s.Entries()

	s.Toggle(wishlist.Entry{ID: "p3", Title: "C"})
	s.Toggle(wishlist.Entry{ID: "p3", Title: "C"})

	require.Equal(t, before, s.Entries())
}

func TestClearEmptiesWishlist(t *testing.T) {
	s := wishlist.NewStore([]wishlist.Entry{{ID: "p1"}, {ID: "p2"}})

	s.Clear()

	require.Empty(t, s.Entries())
	require.Zero(t, s.Len())
}

func TestNewStoreDropsDuplicateIDs(t *testing.T) {
	s := wishlist.NewStore([]wishlist.Entry{
		{ID: "p1", Title: "first"},
		{ID: "p1", Title: "duplicate"},
		{ID: ""},
	})

	entries := s.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "first", entries[0].Title)
}

func TestSubscriberNotifiedOnToggleAndClear(t *testing.T) {
	s := wishlist.NewStore(nil)

	var calls int
	var last []wishlist.Entry
	s.Subscribe(func(entries []wishlist.Entry) {
		calls++
		last = entries
	})

	s.Toggle(wishlist.Entry{ID: "p1"})
	s.Clear()

	require.Equal(t, 2, calls)
	require.Empty(t, last)
}
