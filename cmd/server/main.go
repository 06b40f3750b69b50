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

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"gimm/internal/genealogy/handler"
	genealogymetrics "gimm/internal/genealogy/metrics"
	"gimm/internal/genealogy/search"
	"gimm/internal/genealogy/service"
	"gimm/internal/platform/config"
	"gimm/internal/platform/httpserver"
	"gimm/internal/platform/logger"
	"gimm/internal/platform/metrics"
	"gimm/internal/platform/middleware"
	"gimm/internal/platform/ratelimit"
	"gimm/internal/platform/redis"
	"gimm/internal/platform/watcher"
	"gimm/internal/render"
	"gimm/pkg/platform/circuit"
	"gimm/pkg/platform/middleware/metadata"
	"gimm/pkg/platform/middleware/requesttime"
)

// Exit codes.
const (
	exitConfig = 1
	exitSource = 2
)

// main parses flags and hands off to run. Startup failures exit non-zero;
// a missing GEDCOM file exits with status 2.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(viper.New()).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "gimm:", err)
		if errors.Is(err, config.ErrSourceMissing) {
			os.Exit(exitSource)
		}
		os.Exit(exitConfig)
	}
}

func run(ctx context.Context, cfg config.Server) error {
	log, err := logger.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	if err := cfg.CheckSource(); err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	httpMetrics := metrics.New(reg)
	treeMetrics := genealogymetrics.New(reg)

	searchOpts := []search.Option{search.WithLogger(log), search.WithMetrics(treeMetrics)}
	rdb, err := redis.New(ctx, cfg.RedisURL)
	if err != nil {
		log.WarnContext(ctx, "search cache disabled", "error", err)
	} else if rdb != nil {
		defer rdb.Close()
		searchOpts = append(searchOpts,
			search.WithCache(search.NewRedisCache(rdb, cfg.SearchCacheTTL)),
			search.WithBreaker(circuit.New("search-cache")),
		)
		log.InfoContext(ctx, "search cache enabled")
	}

	renderer, err := render.New()
	if err != nil {
		return err
	}
	svc := service.New(cfg.GedcomPath, renderer,
		service.WithLogger(log),
		service.WithMetrics(treeMetrics),
		service.WithSearcher(search.NewSearcher(cfg.SearchMaxResults, searchOpts...)),
		service.WithContactEmail(cfg.ContactEmail),
		service.WithVersion("gimm "+version),
	)
	if _, err := svc.Load(ctx); err != nil {
		if service.IsSourceMissing(err) {
			return fmt.Errorf("%w: %w", config.ErrSourceMissing, err)
		}
		return fmt.Errorf("loading %s: %w", cfg.GedcomPath, err)
	}

	limiter := ratelimit.NewStore()
	h := handler.New(svc, log,
		handler.WithSearchMiddleware(middleware.RateLimit("search", limiter, cfg.SearchRateLimit, cfg.SearchRateWindow, log, httpMetrics)),
	)

	r := chi.NewRouter()
	r.Use(requesttime.Middleware)
	r.Use(middleware.RequestID)
	r.Use(metadata.ClientMetadata)
	r.Use(chimw.Recoverer)
	r.Use(chimw.StripSlashes)
	r.Use(middleware.Latency(httpMetrics))
	h.Register(r)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := httpserver.New(cfg.Addr, r)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.InfoContext(gctx, "starting gimm", "addr", cfg.Addr, "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		limiter.RunSweeper(gctx, max(cfg.SearchRateWindow, time.Minute))
		return nil
	})
	if cfg.Watch {
		w, err := watcher.New(cfg.GedcomPath, cfg.WatchDebounce, svc.Reload, log)
		if err != nil {
			return err
		}
		g.Go(func() error {
			return w.Run(gctx)
		})
	}

	return g.Wait()
}
