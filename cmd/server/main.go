package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/spf13/pflag"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/taxwiser/internal/auth"
	"github.com/mmynk/taxwiser/internal/calculator"
	"github.com/mmynk/taxwiser/internal/config"
	"github.com/mmynk/taxwiser/internal/knowledge"
	"github.com/mmynk/taxwiser/internal/metrics"
	"github.com/mmynk/taxwiser/internal/middleware"
	"github.com/mmynk/taxwiser/internal/rpc"
	"github.com/mmynk/taxwiser/internal/service"
	"github.com/mmynk/taxwiser/internal/session"
	"github.com/mmynk/taxwiser/internal/storage/sqlite"
	"github.com/mmynk/taxwiser/internal/taxrules"
	"github.com/mmynk/taxwiser/pkg/logging"
)

func main() {
	configPath := pflag.String("config", "", "path to the YAML configuration file (default $TAXWISER_CONFIG)")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logging.Configure(cfg.Logging.Level, cfg.Logging.Format)

	if err := run(cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	// Initialize SQLite storage
	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.Database.Path)

	counties := taxrules.DefaultCounties()
	if cfg.Indiana.CountiesFile != "" {
		counties, err = taxrules.LoadCounties(cfg.Indiana.CountiesFile)
		if err != nil {
			return err
		}
		slog.Info("County rates loaded", "file", cfg.Indiana.CountiesFile)
	}

	secret := cfg.Auth.JWTSecret
	if secret == "" {
		secret, err = randomSecret()
		if err != nil {
			return err
		}
		slog.Warn("No JWT secret configured; sessions will not survive a restart")
	}
	jwtManager := auth.NewJWTManager(secret, cfg.Auth.TokenTTL)

	sessions := session.NewManager(calculator.WithStateRate(cfg.StateRate()))
	m := metrics.New(sessions.Len)

	var returnOpts []service.ReturnOption
	returnOpts = append(returnOpts, service.WithMetrics(m))
	if cfg.Autosave.Enabled {
		returnOpts = append(returnOpts, service.WithAutosave(cfg.Autosave.Timeout))
	}
	returns := service.NewReturnService(store, sessions, counties, returnOpts...)
	defer returns.Wait()

	authSvc := service.NewAuthService(auth.NewAuthenticator(store), jwtManager, sessions, slog.Default())
	assistant := service.NewAssistantService(knowledge.Default(), m)

	mux := http.NewServeMux()

	// Register Connect services. Interceptors run outermost first.
	mux.Handle(rpc.NewAuthServiceHandler(authSvc, connect.WithInterceptors(
		middleware.MetricsInterceptor(m),
		middleware.OptionalAuth(jwtManager),
		middleware.LoggingInterceptor(),
	)))
	mux.Handle(rpc.NewReturnServiceHandler(returns, connect.WithInterceptors(
		middleware.MetricsInterceptor(m),
		middleware.RequireAuth(jwtManager),
		middleware.LoggingInterceptor(),
	)))
	mux.Handle(rpc.NewAssistantServiceHandler(assistant, connect.WithInterceptors(
		middleware.MetricsInterceptor(m),
		middleware.OptionalAuth(jwtManager),
		middleware.LoggingInterceptor(),
	)))

	mux.HandleFunc("/api/health", healthHandler)
	mux.Handle("/metrics", m.Handler())

	staticDir, err := filepath.Abs(cfg.Server.StaticPath)
	if err != nil {
		return fmt.Errorf("failed to resolve static path: %w", err)
	}
	slog.Info("Serving static files", "path", staticDir)
	mux.Handle("/", staticHandler(staticDir))

	// Add logging and CORS middleware
	loggedHandler := loggingMiddleware(corsMiddleware(mux))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           h2c.NewHandler(loggedHandler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", cfg.Server.Addr)
		errc <- server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate JWT secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
