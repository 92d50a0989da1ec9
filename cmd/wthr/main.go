package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/go-redis/redis/v8"
	"golang.org/x/time/rate"

	"github.com/swelljoe/wthr-favorites/internal/app"
	"github.com/swelljoe/wthr-favorites/internal/config"
	"github.com/swelljoe/wthr-favorites/internal/db"
	"github.com/swelljoe/wthr-favorites/internal/favorites"
	"github.com/swelljoe/wthr-favorites/internal/kv"
	"github.com/swelljoe/wthr-favorites/internal/theme"
	"github.com/swelljoe/wthr-favorites/internal/weather"
)

const usage = `usage: wthr <command> [arguments]

commands:
  search [-save] <city>   look up current weather, optionally saving the city
                          (flags go before the city)
  favorites               list saved cities with their last known weather
  refresh <city>          fetch current weather for a saved city
  remove <city>           remove a saved city
  open <city>             look up a saved city
  theme [toggle]          show or flip the light/dark theme`

var errUsage = errors.New(usage)

func main() {
	log.SetFlags(0)
	log.SetPrefix("wthr: ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout)
	stop()
	if err != nil {
		log.Print(err)
		os.Exit(1)
	}
}

// client bundles the controllers for one invocation.
type client struct {
	cfg    config.Config
	out    io.Writer
	theme  *app.ThemeController
	lookup *app.LookupController
	favs   *app.FavoritesController

	// pending holds a navigation request raised by the favorites screen.
	pending *app.NavigationRequest
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	backend, closeBackend, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeBackend()

	c := newClient(ctx, cfg, backend, out)

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "search":
		return c.search(ctx, rest)
	case "favorites", "list":
		return c.list(ctx)
	case "refresh":
		return c.refresh(ctx, strings.Join(rest, " "))
	case "remove":
		return c.remove(ctx, strings.Join(rest, " "))
	case "open":
		return c.open(ctx, strings.Join(rest, " "))
	case "theme":
		return c.toggleTheme(ctx, rest)
	case "help", "-h", "--help":
		fmt.Fprintln(out, usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q\n%w", cmd, errUsage)
	}
}

// openBackend returns the configured key/value store and a func closing it.
func openBackend(ctx context.Context, cfg config.Config) (kv.Store, func(), error) {
	switch cfg.Store {
	case config.StoreMemory:
		return kv.NewMemory(), func() {}, nil
	case config.StoreRedis:
		r, err := kv.NewRedis(ctx, &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, cfg.RedisPrefix)
		if err != nil {
			return nil, nil, err
		}
		return r, func() { r.Close() }, nil
	default:
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		return database, func() { database.Close() }, nil
	}
}

func newClient(ctx context.Context, cfg config.Config, backend kv.Store, out io.Writer) *client {
	wc := weather.NewClient(cfg.APIKey)
	wc.BaseURL = cfg.BaseURL
	wc.Lang = cfg.Lang
	wc.UserAgent = cfg.UserAgent
	wc.HTTPClient.Timeout = cfg.HTTPTimeout
	wc.Limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	lookup := weather.NewService(wc)

	favStore := favorites.NewStore(backend)

	c := &client{cfg: cfg, out: out}
	c.theme = app.NewThemeController(theme.NewStore(backend))
	c.theme.Init(ctx, cfg.SystemTheme)
	c.lookup = app.NewLookupController(lookup, favStore)
	c.favs = app.NewFavoritesController(favStore, lookup, func(req app.NavigationRequest) {
		c.pending = &req
	})
	return c
}

func (c *client) search(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.SetOutput(c.out)
	save := fs.Bool("save", false, "save the city to favorites")
	if err := fs.Parse(args); err != nil {
		return err
	}
	for _, arg := range fs.Args() {
		if strings.HasPrefix(arg, "-") {
			return fmt.Errorf("flag %s must come before the city\n%w", arg, errUsage)
		}
	}
	if err := c.cfg.RequireAPIKey(); err != nil {
		return err
	}

	c.lookup.SetQuery(strings.Join(fs.Args(), " "))
	if err := c.lookup.Search(ctx, c.lookup.State().Query); err != nil {
		return errors.New(app.UserMessage(err))
	}
	c.printSnapshot(c.lookup.State().Snapshot)

	if *save {
		return c.printNotice(c.lookup.SaveCurrentToFavorites(ctx))
	}
	return nil
}

func (c *client) list(ctx context.Context) error {
	items := c.favs.LoadOnFocus(ctx)
	if len(items) == 0 {
		fmt.Fprintln(c.out, "no favorite cities yet")
		return nil
	}
	for _, city := range items {
		c.printFavorite(city)
	}
	return nil
}

func (c *client) refresh(ctx context.Context, name string) error {
	if name == "" {
		return errUsage
	}
	if err := c.cfg.RequireAPIKey(); err != nil {
		return err
	}
	c.favs.LoadOnFocus(ctx)
	if err := c.printNotice(c.favs.Refresh(ctx, name)); err != nil {
		return err
	}
	for _, city := range c.favs.Favorites() {
		if city.Name == name {
			c.printFavorite(city)
		}
	}
	return nil
}

func (c *client) remove(ctx context.Context, name string) error {
	if name == "" {
		return errUsage
	}
	c.favs.LoadOnFocus(ctx)
	return c.printNotice(c.favs.Remove(ctx, name))
}

func (c *client) open(ctx context.Context, name string) error {
	if name == "" {
		return errUsage
	}
	if err := c.cfg.RequireAPIKey(); err != nil {
		return err
	}
	c.favs.LoadOnFocus(ctx)
	c.favs.Select(name)
	if c.pending == nil || c.pending.Screen != app.ScreenLookup {
		return nil
	}

	c.lookup.Prefill(c.pending.City)
	if err := c.lookup.Search(ctx, c.lookup.State().Query); err != nil {
		return errors.New(app.UserMessage(err))
	}
	c.printSnapshot(c.lookup.State().Snapshot)
	return nil
}

func (c *client) toggleTheme(ctx context.Context, args []string) error {
	if len(args) > 0 {
		if args[0] != "toggle" {
			return errUsage
		}
		if err := c.printNotice(c.theme.Toggle(ctx)); err != nil {
			return err
		}
	}
	p := c.theme.Palette()
	fmt.Fprintf(c.out, "theme: %s (background %s, text %s)\n", c.theme.Current(), p.Background, p.Text)
	return nil
}

func (c *client) printSnapshot(snap *weather.Snapshot) {
	if snap == nil {
		return
	}
	fmt.Fprintf(c.out, "%s\n%dºC %s\n", snap.CityName, snap.TemperatureCelsius, snap.Description)
	if url := snap.IconURL(); url != "" {
		fmt.Fprintf(c.out, "icon: %s\n", url)
	}
}

func (c *client) printFavorite(city favorites.City) {
	line := city.Name
	if city.Temperature != nil {
		line += fmt.Sprintf("  %dºC", *city.Temperature)
	} else {
		line += "  --"
	}
	if city.Description != nil && *city.Description != "" {
		line += "  " + *city.Description
	}
	fmt.Fprintln(c.out, line)
}

// printNotice writes informational notices and turns error notices into
// errors so the exit status reflects them.
func (c *client) printNotice(n app.Notice) error {
	if n.IsZero() {
		return nil
	}
	if n.Kind == app.NoticeError {
		return errors.New(n.Message)
	}
	fmt.Fprintln(c.out, n.Message)
	return nil
}
