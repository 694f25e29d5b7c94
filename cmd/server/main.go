package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"gpstrack/internal/config"
	"gpstrack/internal/domain"
	"gpstrack/internal/observability/logging"
	"gpstrack/internal/observability/metrics"
	"gpstrack/internal/observability/middleware"
	impl "gpstrack/internal/service/impl"
	"gpstrack/internal/store"
	httpx "gpstrack/internal/transport/http"
	"gpstrack/pkg/db"
)

func main() {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "dev"
	}

	logger := logging.NewLogger(logging.Config{
		ServiceName: "gpstrack",
		Environment: env,
		Level:       os.Getenv("LOG_LEVEL"),
	})
	slog.SetDefault(logger)

	cfg := config.Load()

	metrics.MustRegister("gpstrack")

	gdb, err := db.OpenGorm(db.Config{DSN: cfg.DatabaseURL, LogSQL: cfg.LogSQL})
	if err != nil {
		logger.Error("gorm open", "error", err)
		os.Exit(1)
	}
	if err := gdb.AutoMigrate(&domain.User{}, &domain.Device{}, &domain.Footprint{}); err != nil {
		logger.Error("automigrate", "error", err)
		os.Exit(1)
	}

	st := store.New(gdb)

	pw := impl.NewPasswordServiceBcrypt()
	ts := impl.NewTokenServiceHS256(impl.TokenConfig{
		Issuer:        cfg.Issuer,
		Audience:      cfg.Audience,
		AccessTTL:     cfg.AccessTTL,
		RefreshTTL:    cfg.RefreshTTL,
		SigningKey:    []byte(cfg.SigningKey),
		RotateRefresh: cfg.RotateRefresh,
	})
	as := impl.NewAuthServiceImpl(st, pw, ts)
	ds := impl.NewDeviceServiceImpl(st)
	fs := impl.NewFootprintServiceImpl(st)

	router := httpx.NewRouter(as, ts, ds, fs)
	handler := middleware.WithRequestAndTrace(middleware.WithMetrics(router))

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("gpstrack listening", "addr", srv.Addr, "issuer", cfg.Issuer)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
