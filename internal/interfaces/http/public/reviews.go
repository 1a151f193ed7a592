package public

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sngm3741/hairline-directory/api/internal/directory/application"
	"github.com/sngm3741/hairline-directory/api/internal/interfaces/http/common"
)

const reviewDedupWindow = 10 * time.Minute

func (h *Handler) reviewCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteMessage(h.logger, w, http.StatusUnauthorized, "authentication required")
			return
		}

		var req reviewCreateRequest
		if err := common.DecodeJSON(w, r, common.MaxJSONRequestBody, &req); err != nil {
			common.WriteError(h.logger, w, err)
			return
		}

		ctx, cancel := h.requestContext(r)
		defer cancel()

		dupKey := "reviews:dup:" + reviewFingerprint(user.ID, req)
		if h.limiter.Seen(ctx, dupKey) {
			common.WriteJSON(h.logger, w, http.StatusAccepted, statusResponse{Status: "duplicate_ignored"})
			return
		}

		review, err := h.service.SubmitReview(ctx, application.SubmitReviewCommand{
			ClinicID:  req.ClinicID,
			UserID:    user.ID,
			Rating:    req.Rating,
			Comment:   req.Comment,
			Anonymous: req.IsAnonymous,
		})
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		h.limiter.Mark(ctx, dupKey, reviewDedupWindow)
		common.WriteJSON(h.logger, w, http.StatusCreated, review)
	}
}

func reviewFingerprint(userID string, req reviewCreateRequest) string {
	normalized := []string{
		userID,
		strings.TrimSpace(req.ClinicID),
		strconv.Itoa(req.Rating),
		strings.ToLower(strings.TrimSpace(req.Comment)),
	}
	sum := sha256.Sum256([]byte(strings.Join(normalized, "|")))
	return hex.EncodeToString(sum[:])
}
