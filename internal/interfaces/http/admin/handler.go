package admin

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/sngm3741/hairline-directory/api/internal/directory/application"
	"github.com/sngm3741/hairline-directory/api/internal/directory/domain"
	"github.com/sngm3741/hairline-directory/api/internal/interfaces/http/common"
)

const defaultTimeout = 10 * time.Second

// Handler wires moderation, catalog and billing endpoints to the directory service.
type Handler struct {
	logger  zerolog.Logger
	service application.DirectoryService
	timeout time.Duration
}

// Config provides dependencies for Handler.
type Config struct {
	Logger  zerolog.Logger
	Service application.DirectoryService
	Timeout time.Duration
}

// NewHandler constructs an admin HTTP handler set.
func NewHandler(cfg Config) *Handler {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Handler{
		logger:  cfg.Logger,
		service: cfg.Service,
		timeout: timeout,
	}
}

// Register mounts admin routes onto router. The router must already
// authenticate requests.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(common.RequireRole(h.logger, domain.RoleAdmin))

		r.Post("/reviews/{id}/approve", h.reviewApproveHandler())
		r.Delete("/reviews/{id}", h.reviewDenyHandler())
		r.Post("/claims/{id}/approve", h.claimApproveHandler())
		r.Delete("/claims/{id}", h.claimDenyHandler())
		r.Post("/submissions/{id}/approve", h.submissionApproveHandler())
		r.Delete("/submissions/{id}", h.submissionDenyHandler())

		r.Post("/clinics", h.clinicSaveHandler())
		r.Put("/clinics/{id}", h.clinicSaveHandler())
		r.Post("/blog-posts", h.blogPostSaveHandler())
		r.Put("/blog-posts/{id}", h.blogPostSaveHandler())
		r.Delete("/blog-posts/{id}", h.blogPostDeleteHandler())
		r.Post("/products", h.productSaveHandler())
		r.Put("/products/{id}", h.productSaveHandler())
		r.Delete("/products/{id}", h.productDeleteHandler())

		r.Post("/admin/reset", h.resetHandler())
	})

	r.Group(func(r chi.Router) {
		r.Use(common.RequireRole(h.logger, domain.RoleAdmin, domain.RoleClinicOwner))
		r.Post("/clinics/{id}/subscription", h.subscriptionProcessHandler())
		r.Delete("/clinics/{id}/subscription", h.subscriptionCancelHandler())
	})
}

func (h *Handler) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), h.timeout)
}

func pathID(r *http.Request) string {
	return strings.TrimSpace(chi.URLParam(r, "id"))
}

func (h *Handler) resetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := h.requestContext(r)
		defer cancel()

		if err := h.service.Reset(ctx); err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		h.logger.Warn().Msg("directory reset to seed data")
		w.WriteHeader(http.StatusNoContent)
	}
}
