package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/pthm/hxui"
	hxuiecho "github.com/pthm/hxui/adapters/echo"
	"github.com/pthm/hxui/components/pager"
	"github.com/pthm/hxui/internal/catalog"
	"github.com/pthm/hxui/internal/config"
)

const pageSizes = "5,10,20,50"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the showcase server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	f := serveCmd.Flags()
	f.String("addr", "", "listen address (overrides HXUI_ADDR)")
	f.Int("per-page", 0, "initial page size (overrides HXUI_PER_PAGE)")
	f.Int("items", -1, "catalog size (overrides HXUI_CATALOG_SIZE)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)

	logger := config.NewLogger(cfg)
	slog.SetDefault(logger)

	promReg := prometheus.NewRegistry()
	promReg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	e := newServer(cfg, logger, promReg)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("showcase listening", "addr", cfg.Addr, "items", cfg.CatalogSize, "per_page", cfg.PerPage)
		if err := e.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("addr") {
		cfg.Addr, _ = f.GetString("addr")
	}
	if f.Changed("per-page") {
		if n, _ := f.GetInt("per-page"); n > 0 {
			cfg.PerPage = n
		}
	}
	if f.Changed("items") {
		if n, _ := f.GetInt("items"); n >= 0 {
			cfg.CatalogSize = n
		}
	}
}

// newServer wires the showcase: the catalog pager under /_c/, the page
// that lazy-loads it at / and Prometheus metrics at /metrics.
func newServer(cfg *config.Config, logger *slog.Logger, promReg *prometheus.Registry) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Debug("request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			return nil
		},
	}))

	reg := hxuiecho.Mount(e,
		hxuiecho.WithKey(cfg.Key),
		hxuiecho.WithLogger(logger),
		hxuiecho.WithMetrics(hxui.NewMetrics(promReg)),
	)

	items := catalog.New(cfg.CatalogSize)
	catalogPager := pager.New(items, pager.WithName("catalog"), pager.WithBody(catalogTable(items)))
	reg.Add(catalogPager)

	e.GET("/", func(c echo.Context) error {
		props := pager.Props{
			PerPage: cfg.PerPage,
			Sizes:   pageSizes,
			Label:   "Catalog pages",
		}
		props.Page, _ = strconv.Atoi(c.QueryParam("page"))
		if c.QueryParam("variant") == string(pager.VariantSimple) {
			props.Variant = pager.VariantSimple
		}
		return hxuiecho.Render(c, showcasePage(catalogPager, props))
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(promReg, promhttp.HandlerOpts{})))
	return e
}
