package admin

import (
	"net/http"

	"github.com/sngm3741/hairline-directory/api/internal/interfaces/http/common"
)

func (h *Handler) reviewApproveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := h.requestContext(r)
		defer cancel()

		approval, err := h.service.ApproveReview(ctx, pathID(r))
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, approval)
	}
}

func (h *Handler) reviewDenyHandler() http.HandlerFunc {
	return h.denyHandler(func(r *http.Request) error {
		ctx, cancel := h.requestContext(r)
		defer cancel()
		return h.service.DenyReview(ctx, pathID(r))
	})
}

func (h *Handler) claimApproveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := h.requestContext(r)
		defer cancel()

		result, err := h.service.ApproveClaim(ctx, pathID(r))
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, result)
	}
}

func (h *Handler) claimDenyHandler() http.HandlerFunc {
	return h.denyHandler(func(r *http.Request) error {
		ctx, cancel := h.requestContext(r)
		defer cancel()
		return h.service.DenyClaim(ctx, pathID(r))
	})
}

func (h *Handler) submissionApproveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := h.requestContext(r)
		defer cancel()

		clinic, err := h.service.ApproveSubmission(ctx, pathID(r))
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusCreated, clinic)
	}
}

func (h *Handler) submissionDenyHandler() http.HandlerFunc {
	return h.denyHandler(func(r *http.Request) error {
		ctx, cancel := h.requestContext(r)
		defer cancel()
		return h.service.DenySubmission(ctx, pathID(r))
	})
}

// denyHandler responds 204 whether or not the item existed.
func (h *Handler) denyHandler(deny func(*http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := deny(r); err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
