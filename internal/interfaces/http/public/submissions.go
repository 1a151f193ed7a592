package public

import (
	"net/http"
	"strings"

	"github.com/sngm3741/hairline-directory/api/internal/directory/application"
	"github.com/sngm3741/hairline-directory/api/internal/interfaces/http/common"
)

// submissionCreateHandler accepts anonymous listings; a valid bearer token,
// when present, links the submission to its author.
func (h *Handler) submissionCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req submissionCreateRequest
		if err := common.DecodeJSON(w, r, common.MaxJSONRequestBody, &req); err != nil {
			common.WriteError(h.logger, w, err)
			return
		}

		ctx, cancel := h.requestContext(r)
		defer cancel()

		submission, err := h.service.SubmitListing(ctx, application.SubmitListingCommand{
			ClinicName:    req.ClinicName,
			ClinicCity:    req.ClinicCity,
			ClinicCountry: req.ClinicCountry,
			ClinicAddress: req.ClinicAddress,
			ClinicPhone:   req.ClinicPhone,
			ClinicWebsite: req.ClinicWebsite,
			SubmitterName: req.SubmitterName,
			SubmitterID:   h.optionalUserID(r),
		})
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusCreated, submission)
	}
}

func (h *Handler) optionalUserID(r *http.Request) string {
	const bearerPrefix = "Bearer "
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if !strings.HasPrefix(header, bearerPrefix) {
		return ""
	}
	user, err := h.tokens.Parse(strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix)))
	if err != nil {
		return ""
	}
	return user.ID
}
