package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"koistore/internal/backend"
	adminhandler "koistore/internal/handlers/admin"
	carthandler "koistore/internal/handlers/cart"
	sessionhandler "koistore/internal/handlers/session"
	storefronthandler "koistore/internal/handlers/storefront"
	"koistore/internal/routes"
	cartservice "koistore/internal/service/cart"
	sessionservice "koistore/internal/service/session"
	"koistore/internal/upload"
	"koistore/pkg/config"
)

type SessionStorage interface {
	sessionservice.SessionStorage
}

type App struct {
	log      *slog.Logger
	cfg      config.HTTPConfig
	server   *http.Server
	storage  SessionStorage
	api      *backend.Client
	uploader *upload.Uploader
	notifier cartservice.ChangeNotifier
	retry    cartservice.RetryPolicy
}

func New(
	log *slog.Logger,
	cfg *config.Config,
	storage SessionStorage,
	api *backend.Client,
	uploader *upload.Uploader,
	notifier cartservice.ChangeNotifier,
) *App {
	retries := cfg.Cart.ConflictRetries
	if retries < 0 {
		retries = 0
	}
	return &App{
		log:      log,
		cfg:      cfg.HTTP,
		storage:  storage,
		api:      api,
		uploader: uploader,
		notifier: notifier,
		retry: cartservice.RetryPolicy{
			Attempts: uint64(retries),
			Backoff:  cfg.Cart.RetryBackoff,
		},
	}
}

// Handler wires services and handlers into the HTTP router.
func (a *App) Handler() http.Handler {
	sessionService := sessionservice.New(a.log, a.storage, a.api, a.retry.Attempts)
	cartService := cartservice.New(a.log, a.storage, a.api, a.api, a.notifier, a.retry)

	return routes.New(
		a.log,
		sessionhandler.New(a.log, sessionService),
		carthandler.New(a.log, cartService, a.api, sessionService),
		storefronthandler.NewCatalog(a.log, a.api),
		storefronthandler.NewAccount(a.log, a.api, sessionService),
		adminhandler.New(a.log, a.api, a.uploader, sessionService),
	).Handler()
}

func (a *App) MustRun() {
	if err := a.Run(); err != nil {
		panic(err)
	}
}

// Run serves until Stop is called.
func (a *App) Run() error {
	const op = "app.Run"

	a.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.cfg.Port),
		Handler:      a.Handler(),
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
	}

	a.log.Info("starting http server", slog.String("addr", a.server.Addr), slog.String("env", a.cfg.Env))
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (a *App) Stop(ctx context.Context) error {
	const op = "app.Stop"

	if a.server == nil {
		return nil
	}
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
