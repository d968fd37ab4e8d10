package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/bookhaven/bookhaven-client/internal/api"
	"github.com/bookhaven/bookhaven-client/internal/books"
	"github.com/bookhaven/bookhaven-client/internal/cart"
	"github.com/bookhaven/bookhaven-client/internal/checkout"
	"github.com/bookhaven/bookhaven-client/internal/session"
	"github.com/bookhaven/bookhaven-client/pkg/config"
	"github.com/bookhaven/bookhaven-client/pkg/logger"
	"github.com/bookhaven/bookhaven-client/pkg/metrics"
)

// App wires the whole client together for the command surface. Commands
// stay thin; every rule lives in the stores and services below.
type App struct {
	Config   *config.Config
	Logger   *logger.Logger
	API      *api.Client
	Session  *session.Store
	Cart     *cart.Store
	Books    *books.Service
	Checkout *checkout.Bridge

	out io.Writer
}

// sessionHook breaks the construction cycle between the API client and
// the session store: the client needs a token source before the store
// that owns tokens exists.
type sessionHook struct {
	store *session.Store
}

func (h *sessionHook) Token(ctx context.Context) (string, bool) {
	if h.store == nil {
		return "", false
	}
	return h.store.Token(ctx)
}

func (h *sessionHook) handleExpired(ctx context.Context) {
	if h.store != nil {
		h.store.HandleSessionExpired(ctx)
	}
}

// NewApp builds the full dependency graph from the environment.
func NewApp() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level, err := zerolog.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logg := logger.New(logger.Options{
		ServiceName: "bookhaven-client",
		Level:       level,
		WarnStack:   cfg.App.LogWarnStack,
	})

	out := os.Stdout
	notifier := &printNotifier{out: out}

	// Navigation in a terminal is a printed URL. Teardown sends the user
	// to the login surface the same way a browser redirect would.
	navigator := session.NavigatorFunc(func(ctx context.Context, url string) error {
		_, err := fmt.Fprintf(out, "Continue here: %s\n", url)
		return err
	})

	hook := &sessionHook{}
	apiClient, err := api.NewClient(api.ClientParams{
		BaseURL:          cfg.API.BaseURL,
		HTTPClient:       &http.Client{Timeout: cfg.API.RequestTimeout},
		Tokens:           hook,
		OnSessionExpired: hook.handleExpired,
		Logger:           logg,
		Metrics:          metrics.NewRequestMetrics(prometheus.DefaultRegisterer),
	})
	if err != nil {
		return nil, err
	}

	credStore, err := session.NewFileStore(cfg.Session.CredentialsPath, cfg.Session.TTL)
	if err != nil {
		return nil, err
	}

	sessionStore, err := session.NewStore(session.StoreParams{
		API:         apiClient,
		Credentials: credStore,
		Navigator:   navigator,
		Notifier:    notifier,
		Logger:      logg,
		LoginURL:    cfg.API.LoginURL,
	})
	if err != nil {
		return nil, err
	}
	hook.store = sessionStore

	cartStore, err := cart.NewStore(cart.StoreParams{
		API:      apiClient,
		Session:  sessionStore,
		Notifier: notifier,
		Logger:   logg,
	})
	if err != nil {
		return nil, err
	}
	sessionStore.Subscribe(cartStore.OnUserChange)

	bookService, err := books.NewService(books.ServiceParams{
		API:    apiClient,
		Logger: logg,
	})
	if err != nil {
		return nil, err
	}

	bridge, err := checkout.NewBridge(checkout.BridgeParams{
		API:       apiClient,
		Cart:      cartStore,
		Navigator: navigator,
		Notifier:  notifier,
		Logger:    logg,
	})
	if err != nil {
		return nil, err
	}

	return &App{
		Config:   cfg,
		Logger:   logg,
		API:      apiClient,
		Session:  sessionStore,
		Cart:     cartStore,
		Books:    bookService,
		Checkout: bridge,
		out:      out,
	}, nil
}

// printNotifier surfaces store notifications on the terminal, standing
// in for the toast layer of a web client.
type printNotifier struct {
	out io.Writer
}

func (n *printNotifier) Success(ctx context.Context, msg string) {
	fmt.Fprintln(n.out, msg)
}

func (n *printNotifier) Error(ctx context.Context, msg string) {
	fmt.Fprintln(n.out, "Error:", msg)
}
