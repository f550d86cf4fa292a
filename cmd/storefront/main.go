package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	storefront "github.com/jrsteele09/go-storefront"
	"github.com/jrsteele09/go-storefront/cart"
	"github.com/jrsteele09/go-storefront/catalog"
	"github.com/jrsteele09/go-storefront/checkout"
	"github.com/jrsteele09/go-storefront/internal/config"
	"github.com/jrsteele09/go-storefront/persist"
	"github.com/jrsteele09/go-storefront/persist/filestore"
	"github.com/jrsteele09/go-storefront/persist/redisstore"
	"github.com/jrsteele09/go-storefront/wishlist"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("Command failed")
	}
}

func run(args []string) error {
	_ = godotenv.Load()
	c := config.New()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if len(args) == 0 {
		displayAppname(c.GetAppName())
		usage()
		return nil
	}

	store, err := newStore(c)
	if err != nil {
		return err
	}

	app := storefront.New(c, store)
	defer app.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	return dispatch(ctx, app, args)
}

// newStore picks the snapshot backend: Redis when configured, otherwise
// files under the data folder.
func newStore(c config.Config) (persist.Store, error) {
	if addr := c.GetRedisAddr(); addr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return redisstore.New(ctx, addr)
	}
	return filestore.New(c.GetDataFolder())
}

func dispatch(ctx context.Context, app *storefront.App, args []string) error {
	switch args[0] {
	case "login":
		return login(ctx, app, args[1:])
	case "logout":
		app.API.Logout(ctx)
		app.Session.Logout()
		fmt.Println("logged out")
		return nil
	case "products":
		return listProducts(ctx, app)
	case "cart":
		return cartCommand(ctx, app, args[1:])
	case "wishlist":
		return wishlistCommand(ctx, app, args[1:])
	case "checkout":
		return placeOrder(ctx, app)
	default:
		usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func login(ctx context.Context, app *storefront.App, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: storefront login <email> <password>")
	}
	app.Session.LoginStart()
	user, err := app.API.Login(ctx, args[0], args[1])
	if err != nil {
		app.Session.LoginFailure(err.Error())
		return err
	}
	if user == nil {
		app.Session.LoginFailure("login response did not include a user")
		return fmt.Errorf("login response did not include a user")
	}
	app.Session.LoginSuccess(*user)
	fmt.Printf("logged in as %s\n", user.Email)
	return nil
}

func listProducts(ctx context.Context, app *storefront.App) error {
	page, err := app.API.GetProducts(ctx, nil)
	if err != nil {
		return err
	}
	for _, p := range page.Items {
		fmt.Printf("%-12s %-30s KWD %.3f\n", p.ID, p.Title, p.Price())
	}
	fmt.Printf("%d product(s)\n", page.Total)
	return nil
}

func cartCommand(ctx context.Context, app *storefront.App, args []string) error {
	if len(args) == 0 {
		for _, item := range app.Cart.Items() {
			fmt.Printf("%-12s %-30s x%d  KWD %.3f\n", item.ID, item.Title, item.Qty, item.Price*float64(item.Qty))
		}
		fmt.Printf("subtotal KWD %.3f\n", app.Cart.Subtotal())
		return nil
	}

	switch args[0] {
	case "add":
		if len(args) != 2 {
			return fmt.Errorf("usage: storefront cart add <product-id>")
		}
		product, err := app.API.GetProduct(ctx, args[1])
		if err != nil {
			return err
		}
		app.Cart.AddItem(cart.LineItem{ID: product.ID, Title: product.Title, Price: product.Price(), Image: product.Image})
		return nil
	case "remove":
		if len(args) != 2 {
			return fmt.Errorf("usage: storefront cart remove <product-id>")
		}
		app.Cart.RemoveItem(args[1])
		return nil
	case "clear":
		app.Cart.Clear()
		return nil
	default:
		return fmt.Errorf("unknown cart command %q", args[0])
	}
}

func wishlistCommand(ctx context.Context, app *storefront.App, args []string) error {
	if len(args) == 0 {
		for _, entry := range app.Wishlist.Entries() {
			fmt.Printf("%-12s %-30s KWD %.3f\n", entry.ID, entry.Title, entry.Price)
		}
		return nil
	}
	if args[0] != "toggle" || len(args) != 2 {
		return fmt.Errorf("usage: storefront wishlist [toggle <product-id>]")
	}
	product, err := app.API.GetProduct(ctx, args[1])
	if err != nil {
		return err
	}
	app.Wishlist.Toggle(toWishlistEntry(product))
	return nil
}

func placeOrder(ctx context.Context, app *storefront.App) error {
	items := app.Cart.Items()
	if len(items) == 0 {
		return fmt.Errorf("cart is empty")
	}

	draft := checkout.Load(app.Store())
	order := draftOrder(draft, items)
	created, err := app.API.CreateOrder(ctx, order)
	if err != nil {
		return err
	}

	app.Cart.Clear()
	checkout.Clear(app.Store())
	fmt.Printf("order %s placed\n", created.ID)
	return nil
}

func toWishlistEntry(p *catalog.Product) wishlist.Entry {
	return wishlist.Entry{
		ID:       p.ID,
		Title:    p.Title,
		Price:    p.Price(),
		Image:    p.Image,
		Category: p.Category,
		Rating:   p.Rating,
	}
}

// draftOrder combines the persisted checkout draft and the cart lines into
// an order payload. Prices go back to integer fils for the wire.
func draftOrder(d checkout.Draft, items []cart.LineItem) catalog.Order {
	order := catalog.Order{
		Name:    d.Name,
		Area:    d.Area,
		Block:   d.Block,
		Street:  d.Street,
		Avenue:  d.Avenue,
		HouseNo: d.HouseNo,
		Phone:   d.Phone,
		Email:   d.Email,
		Notes:   d.Notes,
	}
	for _, item := range items {
		order.Items = append(order.Items, catalog.OrderItem{
			ProductID:   item.ID,
			Title:       item.Title,
			PriceInFils: int64(item.Price*1000 + 0.5),
			Qty:         item.Qty,
		})
	}
	return order
}

func usage() {
	fmt.Println(strings.TrimSpace(`
usage: storefront <command>

  login <email> <password>     authenticate against the backend
  logout                       end the session
  products                     list catalog products
  cart [add|remove <id>|clear] show or mutate the cart
  wishlist [toggle <id>]       show or toggle the wishlist
  checkout                     submit the cart as an order
`))
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
