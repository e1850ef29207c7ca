package internal

import (
	"context"
	"errors"
	"fmt"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"intentd/internal/controllers"
	"intentd/internal/providers"
	"intentd/internal/scheduler/interfaces"
	"intentd/internal/structures"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
)

type App struct {
	WebServer *http.Server
}

// newHandler mounts the API routes behind the metrics middleware, next to
// the health and scrape endpoints.
func newHandler(healthController *controllers.HealthController, routes []structures.Route, metrics providers.MetricsProviderInterface, scrape bool) http.Handler {
	apiMux := http.NewServeMux()
	for _, route := range routes {
		apiMux.Handle(route.Url, route.Handler)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthController.Health)
	if scrape {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Handle("/", providers.MetricsMiddleware(metrics, routes, apiMux))
	return mux
}

func NewApp(healthController *controllers.HealthController, scheduler interfaces.SchedulerInterface, conf *structures.Config, logger providers.Logger, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface) (*App, error) {
	logger.Infof(providers.TypeApp, "Starting %s with %s storage", conf.AppName, conf.Storage.Driver)

	app := &App{
		WebServer: &http.Server{
			Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:      newHandler(healthController, router.GetRoutes(), metrics, conf.Metrics.Enabled),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}

	scheduler.Init()

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof(providers.TypeApp, "Listening HTTP clients on %s:%d", conf.WebServer.Host, conf.WebServer.Port)
		if err := app.WebServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		_ = app.shutdown(scheduler, logger)
		return nil, fmt.Errorf("server error: %w", err)
	}

	if err := app.shutdown(scheduler, logger); err != nil {
		return nil, err
	}
	return app, nil
}

// shutdown stops the jobs, drains HTTP, flushes every session and finally
// closes the log files. Sessions are flushed even when draining fails.
func (a *App) shutdown(scheduler interfaces.SchedulerInterface, logger providers.Logger) error {
	defer logger.Close()

	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := errors.Join(a.WebServer.Shutdown(ctx), scheduler.Persist(ctx))
	if err != nil {
		logger.Errorf(providers.TypeApp, "Shutdown error: %s", err)
		return err
	}
	logger.Infof(providers.TypeApp, "gracefully stopped")
	return nil
}
