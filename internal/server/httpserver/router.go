package httpserver

import (
	"net/http"

	"github.com/yndnr/kernbench-go/internal/server/httpserver/handler"
	"github.com/yndnr/kernbench-go/internal/telemetry/logger"
)

// RouterConfig holds the dependencies for the router.
type RouterConfig struct {
	handler.Deps

	// Metrics serves /metrics; nil leaves the endpoint unregistered.
	Metrics http.Handler

	// RateLimitRPS and RateLimitBurst bound requests per client IP.
	// RPS <= 0 disables limiting.
	RateLimitRPS   float64
	RateLimitBurst int

	// Clients resolves client addresses; nil uses the socket peer.
	Clients *ClientIP
}

// NewRouter creates the HTTP router with all routes and middlewares.
//
// Middleware order: Recover, RequestID, Audit, RateLimit. /metrics skips
// rate limiting so scrapes are never rejected.
func NewRouter(cfg RouterConfig) http.Handler {
	l := cfg.Logger
	if l == nil {
		l = logger.Default()
		cfg.Logger = l
	}

	api := Chain(handler.New(cfg.Deps), RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.Clients))

	mux := http.NewServeMux()
	mux.Handle("/", api)
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics)
	}

	return Chain(mux, Recover(), RequestID(l), Audit(cfg.Clients))
}
