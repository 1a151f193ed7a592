package admin

import (
	"net/http"

	"github.com/sngm3741/hairline-directory/api/internal/directory/domain"
	"github.com/sngm3741/hairline-directory/api/internal/interfaces/http/common"
)

type subscriptionRequest struct {
	Tier string `json:"tier"`
}

// authorizeClinic lets admins through and clinic owners only for their own listing.
func (h *Handler) authorizeClinic(w http.ResponseWriter, r *http.Request, clinicID string) bool {
	principal, ok := common.UserFromContext(r.Context())
	if !ok {
		common.WriteMessage(h.logger, w, http.StatusUnauthorized, "authentication required")
		return false
	}
	if principal.IsAdmin() {
		return true
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	clinic, err := h.service.FindClinic(ctx, clinicID)
	if err != nil {
		common.WriteError(h.logger, w, err)
		return false
	}
	if clinic.OwnerID != principal.ID {
		common.WriteMessage(h.logger, w, http.StatusForbidden, "not the owner of this clinic")
		return false
	}
	return true
}

func (h *Handler) subscriptionProcessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clinicID := pathID(r)
		if !h.authorizeClinic(w, r, clinicID) {
			return
		}

		var req subscriptionRequest
		if err := common.DecodeJSON(w, r, common.MaxJSONRequestBody, &req); err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		tier, err := domain.ParseTier(req.Tier)
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}

		ctx, cancel := h.requestContext(r)
		defer cancel()

		clinic, err := h.service.ProcessSubscription(ctx, clinicID, tier)
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, clinic)
	}
}

func (h *Handler) subscriptionCancelHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clinicID := pathID(r)
		if !h.authorizeClinic(w, r, clinicID) {
			return
		}

		ctx, cancel := h.requestContext(r)
		defer cancel()

		clinic, err := h.service.CancelSubscription(ctx, clinicID)
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, clinic)
	}
}
