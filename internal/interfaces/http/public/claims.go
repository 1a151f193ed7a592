package public

import (
	"net/http"

	"github.com/sngm3741/hairline-directory/api/internal/directory/application"
	"github.com/sngm3741/hairline-directory/api/internal/directory/domain"
	"github.com/sngm3741/hairline-directory/api/internal/interfaces/http/common"
)

func (h *Handler) claimCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req claimCreateRequest
		if err := common.DecodeJSON(w, r, common.MaxUploadRequestBody, &req); err != nil {
			common.WriteError(h.logger, w, err)
			return
		}

		verification, err := domain.NewVerification(req.VerificationMethod, req.DocumentProof)
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}

		ctx, cancel := h.requestContext(r)
		defer cancel()

		claim, err := h.service.SubmitClaim(ctx, application.SubmitClaimCommand{
			ClinicID:       req.ClinicID,
			ClinicName:     req.ClinicName,
			SubmitterName:  req.SubmitterName,
			SubmitterTitle: req.SubmitterTitle,
			SubmitterEmail: req.SubmitterEmail,
			Verification:   verification,
		})
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusCreated, claim)
	}
}
