package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/spendwise/internal/apiclient"
	"github.com/mmynk/spendwise/internal/auth"
	"github.com/mmynk/spendwise/internal/config"
	"github.com/mmynk/spendwise/internal/metrics"
	"github.com/mmynk/spendwise/internal/middleware"
	"github.com/mmynk/spendwise/internal/service"
	"github.com/mmynk/spendwise/pkg/logging"
)

func main() {
	cfg := config.Load()
	logging.Setup(os.Stdout, logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	m := metrics.New()

	client, err := apiclient.New(apiclient.Config{
		BaseURL:            cfg.APIBaseURL,
		Timeout:            cfg.APITimeout,
		InsecureSkipVerify: cfg.IsDevelopment(),
	}, apiclient.WithMetrics(m))
	if err != nil {
		slog.Error("Failed to create backend client", "error", err)
		os.Exit(1)
	}
	slog.Info("Backend client initialized", "base_url", cfg.APIBaseURL, "environment", cfg.Environment)

	api := service.ClientFactory(client)
	parser := auth.NewSessionParser(cfg.SessionSecret)
	if cfg.SessionSecret == "" {
		slog.Warn("SESSION_SECRET not set; session tokens are not signature-checked")
	}

	requireAuth := connect.WithInterceptors(middleware.RequireAuth(parser), middleware.LoggingInterceptor())
	optionalAuth := connect.WithInterceptors(middleware.OptionalAuth(parser), middleware.LoggingInterceptor())

	mux := http.NewServeMux()

	// Register Connect services
	expensePath, expenseHandler := service.NewExpenseServiceHandler(service.NewExpenseService(api, m), requireAuth)
	mux.Handle(expensePath, expenseHandler)

	settlementPath, settlementHandler := service.NewSettlementServiceHandler(service.NewSettlementService(api, m), requireAuth)
	mux.Handle(settlementPath, settlementHandler)

	groupPath, groupHandler := service.NewGroupServiceHandler(service.NewGroupService(api, m), requireAuth)
	mux.Handle(groupPath, groupHandler)

	sessionSvc := service.NewSessionService(
		auth.NewPasswordAuthenticator(client),
		api,
		!cfg.IsDevelopment(),
		slog.Default().With("component", "session"),
	)
	sessionPath, sessionHandler := service.NewSessionServiceHandler(sessionSvc, optionalAuth)
	mux.Handle(sessionPath, sessionHandler)

	mux.Handle("/metrics", m.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	handler := middleware.RequestLogger(middleware.CORS(cfg.CORSOrigin)(mux))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Connect server starting", "address", srv.Addr, "url", fmt.Sprintf("http://localhost%s", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}
