package command

import (
	"context"
	"net"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/kernbench-go/internal/config"
	"github.com/yndnr/kernbench-go/internal/core/service"
	"github.com/yndnr/kernbench-go/internal/infra/buildinfo"
	"github.com/yndnr/kernbench-go/internal/infra/shutdown"
	"github.com/yndnr/kernbench-go/internal/infra/tlsroots"
	"github.com/yndnr/kernbench-go/internal/server/httpserver"
	"github.com/yndnr/kernbench-go/internal/server/httpserver/handler"
	"github.com/yndnr/kernbench-go/internal/server/localserver"
	"github.com/yndnr/kernbench-go/internal/storage/memory"
	"github.com/yndnr/kernbench-go/internal/telemetry/logger"
	"github.com/yndnr/kernbench-go/internal/telemetry/metric"
)

// ServeCommand returns the serve command.
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the benchmark API over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Aliases: []string{"a"},
				Usage:   "Listen address (default from server.http.addr)",
			},
			&cli.StringFlag{
				Name:  "tls-cert",
				Usage: "TLS certificate file",
			},
			&cli.StringFlag{
				Name:  "tls-key",
				Usage: "TLS private key file",
			},
			&cli.StringFlag{
				Name:  "client-ca",
				Usage: "CA file or directory; requires client certificates",
			},
			&cli.StringSliceFlag{
				Name:  "trusted-proxy",
				Usage: "IP or CIDR of a reverse proxy whose X-Forwarded-For is honoured (repeatable)",
			},
			&cli.StringFlag{
				Name:  "socket",
				Usage: "Also serve on this Unix socket (owner-only)",
			},
			&cli.BoolFlag{
				Name:  "no-metrics",
				Usage: "Do not serve /metrics",
			},
			&cli.DurationFlag{
				Name:  "shutdown-timeout",
				Usage: "Time allowed for in-flight requests on shutdown",
				Value: 30 * time.Second,
			},
		},
		Action: serveAction,
	}
}

func serveAction(c *cli.Context) error {
	e := getEnv(c)
	cfg := *e.cfg
	if c.IsSet("addr") {
		cfg.Server.HTTP.Addr = c.String("addr")
	}
	if c.IsSet("tls-cert") {
		cfg.Server.HTTP.TLSCertFile = c.String("tls-cert")
	}
	if c.IsSet("tls-key") {
		cfg.Server.HTTP.TLSKeyFile = c.String("tls-key")
	}
	if c.IsSet("client-ca") {
		cfg.Server.HTTP.ClientCAFile = c.String("client-ca")
	}
	if c.IsSet("trusted-proxy") {
		cfg.Server.HTTP.TrustedProxies = c.StringSlice("trusted-proxy")
	}
	if err := config.Verify(&cfg); err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}
	clients, err := httpserver.NewClientIP(cfg.Server.HTTP.TrustedProxies)
	if err != nil {
		return cli.Exit(err.Error(), exitUsage)
	}

	l := e.logger.With("component", "serve")
	sh := shutdown.NewHandler(c.Duration("shutdown-timeout"), l)
	metrics := metric.NewRegistry()

	runnerOpts := []service.RunnerOption{
		service.WithLogger(e.logger),
		service.WithRecorder(metrics),
		service.WithDefaults(cfg.RunDefaults()),
	}
	var history *service.History
	if cfg.Storage.NoHistory {
		history = service.NewHistory(memory.New())
	} else {
		store, err := e.openStore()
		if err != nil {
			return exitError(err)
		}
		store.RegisterMetrics(metrics.Registerer(), 15*time.Second)
		runnerOpts = append(runnerOpts, service.WithStore(store))
		history = service.NewHistory(store)
		sh.OnShutdown("store", func(context.Context) error { return store.Close() })
	}
	runner := service.NewRunner(e.catalogue, runnerOpts...)

	if path := watchedConfig(e.configPath); path != "" {
		w, err := config.Watch(path, e.overrides, e.logger, func(next *config.Config) {
			runner.SetDefaults(next.RunDefaults())
			logger.SetLevel(next.Log.Level)
		})
		if err != nil {
			l.Warn("config watch disabled", "path", path, "error", err)
		} else {
			sh.OnShutdown("config-watcher", func(context.Context) error { return w.Stop() })
		}
	}

	srvCfg := httpserver.Config{
		Addr:         cfg.Server.HTTP.Addr,
		ReadTimeout:  cfg.Server.HTTP.ReadTimeout,
		WriteTimeout: cfg.Server.HTTP.WriteTimeout,
	}
	if cfg.Server.HTTP.TLSCertFile != "" {
		tlsCfg, reloader, err := tlsroots.ServerConfig(
			cfg.Server.HTTP.TLSCertFile,
			cfg.Server.HTTP.TLSKeyFile,
			cfg.Server.HTTP.ClientCAFile,
			e.logger,
		)
		if err != nil {
			return exitError(err)
		}
		reloader.StartAsync()
		sh.OnShutdown("tls-reloader", func(context.Context) error {
			reloader.Stop()
			return nil
		})
		srvCfg.TLS = tlsCfg
	}

	routerCfg := httpserver.RouterConfig{
		Deps: handler.Deps{
			Catalogue: e.catalogue,
			Runner:    runner,
			History:   history,
			Verifier:  service.NewVerifier(e.logger),
			Logger:    e.logger,
		},
		RateLimitRPS:   cfg.Server.RateLimit.RPS,
		RateLimitBurst: cfg.Server.RateLimit.Burst,
		Clients:        clients,
	}
	if !c.Bool("no-metrics") {
		routerCfg.Metrics = metrics.Handler()
	}

	router := httpserver.NewRouter(routerCfg)
	srv := httpserver.New(srvCfg, router, e.logger)
	ln, err := net.Listen("tcp", srvCfg.Addr)
	if err != nil {
		return exitError(err)
	}
	sh.OnShutdown("http", srv.Shutdown)

	serveErr := make(chan error, 2)
	go func() {
		serveErr <- srv.Serve(ln)
		sh.Trigger()
	}()

	if path := c.String("socket"); path != "" {
		local := localserver.New(path, router, e.logger)
		if err := local.Listen(); err != nil {
			sh.Trigger()
			sh.Wait(c.Context)
			return exitError(err)
		}
		sh.OnShutdown("socket", local.Shutdown)
		go func() {
			serveErr <- local.Serve()
			sh.Trigger()
		}()
	}

	l.Info("kernbench serving",
		"addr", ln.Addr().String(),
		"tls", srvCfg.TLS != nil,
		"version", buildinfo.String(),
		"history", !cfg.Storage.NoHistory)

	if err := sh.Wait(c.Context); err != nil {
		return cli.Exit(err.Error(), exitFailure)
	}
	if err := <-serveErr; err != nil {
		return cli.Exit(err.Error(), exitFailure)
	}
	return nil
}

// watchedConfig returns the configuration file to watch, or "" when none
// exists.
func watchedConfig(path string) string {
	if path == "" {
		path = config.DefaultConfigPath()
	}
	if path == "" {
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
