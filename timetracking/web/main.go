package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"axiapac.com/timetracker/config"
	"axiapac.com/timetracker/timetracking/app"
	"axiapac.com/timetracker/timetracking/web/router"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	a, err := app.Open(ctx, cfg, "timetracker-api")
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close(context.Background())

	jwtSecret, err := a.SigningKey()
	if err != nil {
		log.Fatal("Failed to decode JWT secret:", err)
	}

	gin.SetMode(gin.ReleaseMode)
	r := router.New(a.Handler(), jwtSecret)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Port,
		Handler:           otelhttp.NewHandler(r, "timetracker"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	a.Logger.Info("listening", "addr", srv.Addr, "timezone", cfg.TimeZone)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		a.Logger.Error("server stopped", "error", err)
	}
}
