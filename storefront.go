// Package storefront is the composition root of the client: it owns the
// cart, wishlist and session stores, hydrates them from durable storage,
// mirrors every state change back, and keeps the token refresh timer armed
// for the lifetime of the App.
package storefront

import (
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-storefront/api"
	"github.com/jrsteele09/go-storefront/cart"
	"github.com/jrsteele09/go-storefront/internal/config"
	internalerrors "github.com/jrsteele09/go-storefront/internal/errors"
	"github.com/jrsteele09/go-storefront/persist"
	"github.com/jrsteele09/go-storefront/session"
	"github.com/jrsteele09/go-storefront/wishlist"
)

// App owns the storefront's client-side state. Construct with New, release
// with Close.
type App struct {
	Cart     *cart.Store
	Wishlist *wishlist.Store
	Session  *session.Store
	API      *api.Client

	store persist.Store
}

// New hydrates the stores from the given persistence store, wires the
// re-persist subscriptions and, when a previous session left a token
// behind, arms the proactive refresh timer.
func New(cfg config.Config, store persist.Store) *App {
	tokens := persist.NewTokens(store)

	// A persisted session is only trusted while its access token is still
	// around; without one the user is anonymous.
	seed := persist.LoadSession(store)
	if _, ok := tokens.Token(); !ok {
		seed = session.Anonymous()
	}

	app := &App{
		Cart:     cart.NewStore(persist.LoadCart(store)),
		Wishlist: wishlist.NewStore(persist.LoadWishlist(store)),
		Session:  session.NewStore(seed),
		store:    store,
	}

	app.API = api.NewClient(cfg, tokens, app.onAuthExpired)

	// Mirror every committed mutation back to storage.
	app.Cart.Subscribe(func(items []cart.LineItem) {
		persist.SaveCart(store, items)
	})
	app.Wishlist.Subscribe(func(entries []wishlist.Entry) {
		persist.SaveWishlist(store, entries)
	})
	app.Session.Subscribe(func(s session.Session) {
		persist.SaveSession(store, s)
	})

	// A token persisted by a previous run still needs its refresh armed.
	if err := app.API.ScheduleRefresh(); err != nil && !internalerrors.Is(err, internalerrors.ErrNoToken) {
		log.Warn().Err(err).Msg("Could not schedule refresh for stored token")
	}

	return app
}

// onAuthExpired runs after a terminal background refresh failure: the API
// client has already cleared the token, so drop the session to anonymous.
func (a *App) onAuthExpired() {
	a.Session.Logout()
}

// Store exposes the underlying persistence store, for collaborators that
// persist their own keys (the checkout draft).
func (a *App) Store() persist.Store {
	return a.store
}

// Close cancels the pending refresh timer. The persisted snapshots remain
// for the next run.
func (a *App) Close() {
	a.API.CancelRefresh()
}
