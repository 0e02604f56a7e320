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

	"github.com/joho/godotenv"

	"hydroroute.org/internal/app"
	"hydroroute.org/internal/logging"
	"hydroroute.org/internal/planner"
	"hydroroute.org/internal/restapi"
)

func main() {
	// A missing .env file is fine; the environment and flags still apply.
	_ = godotenv.Load(".env")

	opts, err := parseOptions(os.Args[1:], os.LookupEnv, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	level, err := logging.ParseLevel(opts.logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := logging.NewStructuredLogger(os.Stdout, level)
	slog.SetDefault(logger)

	if err := run(opts, logger); err != nil {
		logging.LogError(logger, "server stopped", err)
		os.Exit(1)
	}
}

func run(opts options, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	manager, err := planner.InitNetworkManager(ctx, opts.plannerConfig, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize network manager: %w", err)
	}
	defer manager.Shutdown()

	manager.PrintStatistics(os.Stdout)

	hangups := make(chan os.Signal, 1)
	signal.Notify(hangups, syscall.SIGHUP)
	defer signal.Stop(hangups)
	go watchHangups(ctx, hangups, manager, reloadDotEnv, os.LookupEnv, logger)

	application := &app.Application{
		Config:        opts.appConfig,
		PlannerConfig: opts.plannerConfig,
		Logger:        logger,
		Planner:       manager,
	}
	api := restapi.NewRestAPI(application)
	defer api.Shutdown()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", opts.appConfig.Port),
		Handler:      api.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: opts.appConfig.RouteTimeout + 10*time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr, "env", opts.appConfig.Env.String(),
			"dataset", opts.plannerConfig.DatasetPath)
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-serverErr; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
