package public

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/sngm3741/hairline-directory/api/internal/directory/application"
	"github.com/sngm3741/hairline-directory/api/internal/infrastructure/blob"
	"github.com/sngm3741/hairline-directory/api/internal/interfaces/http/common"
)

const defaultTimeout = 10 * time.Second

// Handler wires public HTTP endpoints to the directory service.
type Handler struct {
	logger  zerolog.Logger
	service application.DirectoryService
	tokens  *common.TokenManager
	limiter *common.RateLimiter
	media   blob.Store
	timeout time.Duration
}

// Config defines dependencies required by Handler. Media is optional; without
// it uploaded files are not served back.
type Config struct {
	Logger  zerolog.Logger
	Service application.DirectoryService
	Tokens  *common.TokenManager
	Limiter *common.RateLimiter
	Media   blob.Store
	Timeout time.Duration
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Handler{
		logger:  cfg.Logger,
		service: cfg.Service,
		tokens:  cfg.Tokens,
		limiter: cfg.Limiter,
		media:   cfg.Media,
		timeout: timeout,
	}
}

// Register mounts all public routes onto the router.
func (h *Handler) Register(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Get("/bootstrap", h.bootstrapHandler())
	r.Get("/clinics/{id}", h.clinicDetailHandler())

	r.Post("/auth/signup", h.signUpHandler())
	r.Post("/auth/login", h.loginHandler())
	r.Post("/auth/logout", h.logoutHandler())
	r.Get("/auth/session", h.sessionHandler())

	r.With(h.limiter.Middleware("claims")).Post("/claims", h.claimCreateHandler())
	r.With(h.limiter.Middleware("submissions")).Post("/submissions", h.submissionCreateHandler())
	r.With(h.limiter.Middleware("newsletter")).Post("/newsletter", h.newsletterSubscribeHandler())

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.With(h.limiter.Middleware("reviews")).Post("/reviews", h.reviewCreateHandler())
		r.Post("/uploads", h.uploadHandler())
		r.Post("/users/{id}/favorites/{clinicId}", h.favoriteToggleHandler())
		r.Put("/users/{id}/journal/{milestone}", h.journalSaveHandler())
	})

	if h.media != nil {
		r.Get("/media/*", h.mediaHandler())
	}
}

func (h *Handler) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), h.timeout)
}
