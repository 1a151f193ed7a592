package public

import (
	"net/http"

	"github.com/sngm3741/hairline-directory/api/internal/interfaces/http/common"
)

func (h *Handler) newsletterSubscribeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req newsletterRequest
		if err := common.DecodeJSON(w, r, common.MaxJSONRequestBody, &req); err != nil {
			common.WriteError(h.logger, w, err)
			return
		}

		ctx, cancel := h.requestContext(r)
		defer cancel()

		subscriber, err := h.service.SubscribeNewsletter(ctx, req.Email)
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusCreated, subscriber)
	}
}
