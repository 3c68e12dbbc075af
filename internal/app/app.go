package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/bookcook/api/internal/api"
	"github.com/bookcook/api/internal/auth"
	"github.com/bookcook/api/internal/config"
	"github.com/bookcook/api/internal/database"
	"github.com/bookcook/api/internal/monitoring"
	"github.com/bookcook/api/internal/seed"
	"github.com/bookcook/api/internal/services"
	"github.com/bookcook/api/internal/store"
	"github.com/bookcook/api/internal/websocket"
)

const shutdownTimeout = 5 * time.Second

// App owns the stores, background workers and both HTTP routers.
type App struct {
	cfg    *config.Config
	db     *sql.DB
	hub    *websocket.Hub
	pruner *monitoring.EventPruner

	Cookbook http.Handler
	Books    http.Handler
}

type stores struct {
	recipes store.Recipes
	books   store.Books
	users   store.Users
	events  store.EventLog
}

// New wires the application from cfg. Collections live in memory unless
// cfg.DatabasePath names a sqlite database.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{cfg: cfg}

	st, err := a.openStores(ctx)
	if err != nil {
		return nil, err
	}

	hasher := auth.NewHasher(cfg.BcryptCost)
	if err := seed.Load(ctx, st.recipes, st.books, st.users, hasher); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to seed collections: %w", err)
	}

	a.hub = websocket.NewHub()
	go a.hub.Run()

	eventService := services.NewEventService(st.events, a.hub)
	opts := api.Options{
		Recipes:     services.NewRecipeService(st.recipes, eventService),
		Books:       services.NewBookService(st.books, eventService),
		Users:       services.NewUserService(st.users, hasher, eventService),
		Events:      eventService,
		Hub:         a.hub,
		Development: cfg.IsDevelopment(),
		CORSOrigins: cfg.CORSOrigins,
	}

	a.pruner, err = monitoring.NewEventPruner(eventService, cfg.EventPruneSchedule, cfg.EventRetention)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Cookbook = api.NewCookbookRouter(opts)
	a.Books = api.NewBooksRouter(opts)
	return a, nil
}

func (a *App) openStores(ctx context.Context) (stores, error) {
	if a.cfg.DatabasePath == "" {
		log.Info().Msg("Using in-memory collections")
		return stores{
			recipes: store.NewMemoryRecipes(),
			books:   store.NewMemoryBooks(),
			users:   store.NewMemoryUsers(),
			events:  store.NewMemoryEventLog(),
		}, nil
	}

	db, err := database.New(a.cfg.DatabasePath)
	if err != nil {
		return stores{}, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return stores{}, fmt.Errorf("failed to apply database migrations: %w", err)
	}
	a.db = db

	log.Info().Str("path", a.cfg.DatabasePath).Msg("Using sqlite collections")
	return stores{
		recipes: database.NewRecipeStore(db),
		books:   database.NewBookStore(db),
		users:   database.NewUserStore(db),
		events:  database.NewEventStore(db),
	}, nil
}

// Run serves both services until ctx is cancelled or a listener fails, then shuts
// everything down gracefully.
func (a *App) Run(ctx context.Context) error {
	servers := []*http.Server{
		{Addr: fmt.Sprintf(":%d", a.cfg.CookbookPort), Handler: a.Cookbook},
		{Addr: fmt.Sprintf(":%d", a.cfg.BooksPort), Handler: a.Books},
	}
	names := []string{"cookbook", "in-n-out-books"}

	a.pruner.Start()

	errCh := make(chan error, len(servers))
	for i, srv := range servers {
		i, srv := i, srv
		go func() {
			log.Info().Str("service", names[i]).Str("addr", srv.Addr).Msg("Server starting")
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("%s server: %w", names[i], err)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down servers...")
	case runErr = <-errCh:
		log.Error().Err(runErr).Msg("Server failed, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	for i, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Str("service", names[i]).Msg("Server forced to shutdown")
			runErr = errors.Join(runErr, err)
		}
	}

	a.pruner.Stop()
	if err := a.Close(); err != nil {
		runErr = errors.Join(runErr, err)
	}

	log.Info().Msg("Servers exited")
	return runErr
}

// Close stops the websocket hub and releases the database, if any.
func (a *App) Close() error {
	if a.hub != nil {
		a.hub.Stop()
	}
	if a.db != nil {
		err := a.db.Close()
		a.db = nil
		return err
	}
	return nil
}
