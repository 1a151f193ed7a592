package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/sngm3741/hairline-directory/api/internal/config"
	"github.com/sngm3741/hairline-directory/api/internal/directory/application"
	"github.com/sngm3741/hairline-directory/api/internal/infrastructure/blob"
	adminhttp "github.com/sngm3741/hairline-directory/api/internal/interfaces/http/admin"
	commonhttp "github.com/sngm3741/hairline-directory/api/internal/interfaces/http/common"
	publichttp "github.com/sngm3741/hairline-directory/api/internal/interfaces/http/public"
)

// Dependencies are the collaborators the HTTP layer is assembled from.
// Cache, Metrics and Media are optional.
type Dependencies struct {
	Logger       zerolog.Logger
	Service      application.DirectoryService
	Media        blob.Store
	Cache        commonhttp.CacheProvider
	Metrics      http.Handler
	HealthChecks map[string]func(context.Context) error
	Closers      []func(context.Context) error
}

// Server は HTTP サーバーのライフサイクルを管理し、Public/Admin の各ハンドラへ依存注入するコンポジションルート。
type Server struct {
	logger          zerolog.Logger
	router          chi.Router
	addr            string
	shutdownTimeout time.Duration
	healthChecks    map[string]func(context.Context) error
	closers         []func(context.Context) error
}

// New はルーティングとミドルウェアを組み立てた Server を返す。
func New(cfg config.Config, deps Dependencies) *Server {
	s := &Server{
		logger:          deps.Logger,
		addr:            cfg.Addr,
		shutdownTimeout: cfg.ShutdownTimeout,
		healthChecks:    deps.HealthChecks,
		closers:         deps.Closers,
	}
	if s.shutdownTimeout <= 0 {
		s.shutdownTimeout = 10 * time.Second
	}

	tokens := commonhttp.NewTokenManager(cfg.JWT.Issuer, cfg.JWT.Secret, cfg.JWT.TTL)
	limiter := commonhttp.NewRateLimiter(deps.Cache, cfg.RateLimitPerHour, time.Hour, deps.Logger)
	authMiddleware := commonhttp.Authenticate(tokens, deps.Logger)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(commonhttp.AccessLog(deps.Logger))
	router.Use(middleware.Recoverer)
	router.Use(withCORS(cfg.AllowedOrigins))

	router.Get("/healthz", s.healthHandler())
	if deps.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", deps.Metrics)
	}

	publicHandler := publichttp.NewHandler(publichttp.Config{
		Logger:  deps.Logger,
		Service: deps.Service,
		Tokens:  tokens,
		Limiter: limiter,
		Media:   deps.Media,
		Timeout: cfg.RequestTimeout,
	})
	publicHandler.Register(router, authMiddleware)

	adminHandler := adminhttp.NewHandler(adminhttp.Config{
		Logger:  deps.Logger,
		Service: deps.Service,
		Timeout: cfg.RequestTimeout,
	})
	router.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		adminHandler.Register(r)
	})

	s.router = router
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully and releases
// the collaborators registered as closers.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.addr).Msg("HTTP server listening")
		errChan <- httpServer.ListenAndServe()
	}()

	var runErr error
	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			runErr = err
		}
	case <-ctx.Done():
		s.logger.Info().Msg("shutdown requested")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server shutdown")
			runErr = err
		}
		cancel()
	}

	s.close()
	return runErr
}

func (s *Server) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, closeFn := range s.closers {
		if err := closeFn(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("release dependency")
		}
	}
}

// healthHandler はインフラ状態のみを返す。
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := make(map[string]string, len(s.healthChecks))
		status := http.StatusOK
		for name, check := range s.healthChecks {
			if err := check(ctx); err != nil {
				checks[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			checks[name] = "ok"
		}

		body := map[string]any{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		}
		if status != http.StatusOK {
			body["status"] = "degraded"
		}
		if len(checks) > 0 {
			body["checks"] = checks
		}
		commonhttp.WriteJSON(s.logger, w, status, body)
	}
}

// withCORS は許可されたオリジン情報をもとに CORS ヘッダーを付与するミドルウェアを返す。
func withCORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{})
	allowAll := false
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			allowAll = true
			continue
		}
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin == "" || (!allowAll && !originAllowed(origin, allowed)) {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization,Content-Type")
			w.Header().Set("Access-Control-Max-Age", "300")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// originAllowed は指定された Origin が許可リストに含まれるか判定する。
func originAllowed(origin string, allowed map[string]struct{}) bool {
	if len(allowed) == 0 {
		return true
	}
	_, ok := allowed[origin]
	return ok
}
