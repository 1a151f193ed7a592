package public

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sngm3741/hairline-directory/api/internal/directory/application"
	"github.com/sngm3741/hairline-directory/api/internal/interfaces/http/common"
)

// authorizeUser allows the user themself or an admin.
func (h *Handler) authorizeUser(w http.ResponseWriter, r *http.Request, userID string) bool {
	principal, ok := common.UserFromContext(r.Context())
	if !ok {
		common.WriteMessage(h.logger, w, http.StatusUnauthorized, "authentication required")
		return false
	}
	if principal.ID != userID && !principal.IsAdmin() {
		common.WriteMessage(h.logger, w, http.StatusForbidden, "cannot modify another user")
		return false
	}
	return true
}

func (h *Handler) favoriteToggleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(chi.URLParam(r, "id"))
		clinicID := strings.TrimSpace(chi.URLParam(r, "clinicId"))
		if !h.authorizeUser(w, r, userID) {
			return
		}

		ctx, cancel := h.requestContext(r)
		defer cancel()

		user, err := h.service.ToggleFavoriteClinic(ctx, userID, clinicID)
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, user)
	}
}

func (h *Handler) journalSaveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(chi.URLParam(r, "id"))
		milestone := strings.TrimSpace(chi.URLParam(r, "milestone"))
		if !h.authorizeUser(w, r, userID) {
			return
		}

		var req journalRequest
		if err := common.DecodeJSON(w, r, common.MaxUploadRequestBody, &req); err != nil {
			common.WriteError(h.logger, w, err)
			return
		}

		ctx, cancel := h.requestContext(r)
		defer cancel()

		user, err := h.service.SaveJournalEntry(ctx, userID, milestone, application.JournalEntryCommand{
			Notes:    req.Notes,
			PhotoURL: req.PhotoURL,
		})
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, user)
	}
}
