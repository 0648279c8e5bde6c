package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"pritapia/internal/audit"
	"pritapia/internal/config"
	"pritapia/internal/domain"
	"pritapia/internal/observability/logging"
	"pritapia/internal/observability/metrics"
	"pritapia/internal/observability/middleware"
	"pritapia/internal/ratelimit"
	impl "pritapia/internal/service/impl"
	"pritapia/internal/store"
	httpx "pritapia/internal/transport/http"
	"pritapia/pkg/db"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "dev"
	}

	logger := logging.NewLogger(logging.Config{
		ServiceName: "pritapia",
		Environment: env,
		Level:       os.Getenv("LOG_LEVEL"),
	})

	slog.SetDefault(logger)

	logger.Info("starting service")

	cfg := config.Load()

	metrics.MustRegister("pritapia")

	gdb, err := db.OpenGorm(db.Config{DSN: cfg.DatabaseURL, LogSQL: cfg.LogSQL})
	if err != nil {
		logger.Error("gorm open", "error", err)
		os.Exit(1)
	}
	if cfg.AutoMigrate {
		if err := gdb.AutoMigrate(&domain.User{}, &domain.Session{}, &domain.AuditLog{}); err != nil {
			logger.Error("automigrate", "error", err)
			os.Exit(1)
		}
	}

	st := store.New(gdb)

	recorder := audit.NewStoreRecorder(st)
	passwords := impl.NewPasswordServiceBcrypt(bcrypt.DefaultCost, cfg.LegacyPlaintextPasswords)
	sessions := impl.NewSessionService(st, cfg.SessionTTL)
	limiter := ratelimit.New(cfg.LoginAttemptsPerMinute, cfg.LoginBurst)

	auth := impl.NewAuthServiceImpl(st, passwords, sessions, recorder, limiter)
	audits := impl.NewAuditService(st)

	if cfg.LegacyPlaintextPasswords {
		logger.Warn("legacy plaintext password shim is enabled; disable once all rows are migrated")
	}

	// Sweep out expired session rows so the table does not grow unbounded.
	go func() {
		t := time.NewTicker(time.Hour)
		defer t.Stop()
		for range t.C {
			n, err := st.Sessions().PurgeExpired(context.Background(), time.Now().UTC())
			if err != nil {
				logger.Warn("session purge failed", "error", err)
				continue
			}
			if n > 0 {
				logger.Info("purged expired sessions", "count", n)
			}
		}
	}()

	mux := httpx.NewRouter(auth, audits, cfg.TrustProxy)
	handler := middleware.WithRequestAndTrace(middleware.WithMetrics(mux))

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("listening", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
