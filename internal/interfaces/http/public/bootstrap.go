package public

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sngm3741/hairline-directory/api/internal/interfaces/http/common"
)

func (h *Handler) bootstrapHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := h.requestContext(r)
		defer cancel()

		snapshot, err := h.service.Bootstrap(ctx)
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, snapshot)
	}
}

func (h *Handler) clinicDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))

		ctx, cancel := h.requestContext(r)
		defer cancel()

		clinic, err := h.service.FindClinic(ctx, id)
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, clinic)
	}
}
