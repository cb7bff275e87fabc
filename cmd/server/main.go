package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vedran77/contacts/internal/auth"
	"github.com/vedran77/contacts/internal/config"
	"github.com/vedran77/contacts/internal/database"
	"github.com/vedran77/contacts/internal/logging"
	"github.com/vedran77/contacts/internal/repository"
	"github.com/vedran77/contacts/internal/repository/memory"
	postgresrepo "github.com/vedran77/contacts/internal/repository/postgres"
	"github.com/vedran77/contacts/internal/service"
	"github.com/vedran77/contacts/internal/transport/http/handlers"
	"github.com/vedran77/contacts/internal/transport/http/middleware"
	"github.com/vedran77/contacts/internal/transport/ws"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logging.New(os.Stdout, cfg.LogFormat, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Repositories
	var (
		userRepo    repository.UserRepository
		contactRepo repository.ContactRepository
	)
	switch cfg.Storage {
	case "memory":
		store := memory.NewStore()
		userRepo = store.Users()
		contactRepo = store.Contacts()
		log.Warn(ctx, "using in-memory storage, data is lost on exit")
	default:
		pool, err := database.Connect(ctx, cfg.DSN())
		if err != nil {
			return err
		}
		defer pool.Close()
		log.Info(ctx, "connected to database")

		if err := postgresrepo.Migrate(ctx, pool); err != nil {
			return err
		}

		userRepo = postgresrepo.NewUserRepo(pool)
		contactRepo = postgresrepo.NewContactRepo(pool)
	}

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return err
	}
	hasher := auth.DefaultArgon2Params

	// Services
	authService, err := service.NewAuthService(userRepo, hasher, tokens, log)
	if err != nil {
		return err
	}
	userService := service.NewUserService(userRepo, hasher, log)
	contactService := service.NewContactService(contactRepo, log)

	// WebSocket hub
	hub := ws.NewHub(log)
	contactService.SetNotifier(ws.NewHubNotifier(hub, log))

	var limiter *middleware.RateLimiter
	if cfg.RateLimitRequests > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	}

	router := handlers.NewRouter(handlers.RouterDeps{
		Auth:        authService,
		Users:       userService,
		Contacts:    contactService,
		Tokens:      tokens,
		WS:          ws.ServeWS(hub, tokens, cfg.CORSOrigin, log),
		RateLimiter: limiter,
		CORSOrigin:  cfg.CORSOrigin,
		Log:         log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
