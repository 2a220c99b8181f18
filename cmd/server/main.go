package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/BerylCAtieno/pvf-customer-form/internal/config"
	"github.com/BerylCAtieno/pvf-customer-form/internal/form"
	"github.com/BerylCAtieno/pvf-customer-form/internal/logger"
	"github.com/BerylCAtieno/pvf-customer-form/internal/observability"
	"github.com/BerylCAtieno/pvf-customer-form/internal/profiler"
	"github.com/BerylCAtieno/pvf-customer-form/internal/web"
)

func main() {
	cfg := config.LoadConfig()

	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitTracing(ctx, log, cfg.Tracing, cfg.Server.Environment)
	if err != nil {
		log.Fatal("failed to initialize tracing", "error", err)
	}

	// The key is resolved on every call; a missing key only fails Smart Fill
	// and Analyze, not startup.
	if cfg.Gemini.APIKey() == "" {
		log.Warn("no Gemini API key set; AI features will fail until GEMINI_API_KEY or API_KEY is exported")
	}
	gateway := profiler.NewGeminiClient(cfg.Gemini.APIKey, profiler.NewGeminiGenerator(cfg.Gemini), log)
	controller := form.NewController(gateway, log)

	serviceName := ""
	if cfg.Tracing.Enabled {
		serviceName = cfg.Tracing.ServiceName
	}
	router := web.NewRouter(web.RouterConfig{
		Handler:        web.NewFormHandler(controller, log),
		Log:            log,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		ServiceName:    serviceName,
	})

	// Request contexts derive from ctx so open event streams end on shutdown.
	srv := &http.Server{
		Addr:        ":" + cfg.Server.Port,
		Handler:     router,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		log.Info("customer profile form starting", "port", cfg.Server.Port, "model", cfg.Gemini.Model)
		log.Info("form available", "url", fmt.Sprintf("http://localhost:%s/", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed to start", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("tracing shutdown failed", "error", err)
	}
}
