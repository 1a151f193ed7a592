package public

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sngm3741/hairline-directory/api/internal/infrastructure/blob"
	"github.com/sngm3741/hairline-directory/api/internal/interfaces/http/common"
)

func (h *Handler) uploadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req uploadRequest
		if err := common.DecodeJSON(w, r, common.MaxUploadRequestBody, &req); err != nil {
			common.WriteError(h.logger, w, err)
			return
		}

		ctx, cancel := h.requestContext(r)
		defer cancel()

		url, err := h.service.UploadFile(ctx, req.Data)
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusCreated, uploadResponse{URL: url})
	}
}

// mediaHandler streams an uploaded object back from blob storage.
func (h *Handler) mediaHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
		if key == "" || strings.Contains(key, "..") {
			common.WriteMessage(h.logger, w, http.StatusNotFound, "media not found")
			return
		}

		ctx, cancel := h.requestContext(r)
		defer cancel()

		info, body, err := h.media.Get(ctx, key)
		if errors.Is(err, blob.ErrNotFound) {
			common.WriteMessage(h.logger, w, http.StatusNotFound, "media not found")
			return
		}
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		defer body.Close()

		if info.ContentType != "" {
			w.Header().Set("Content-Type", info.ContentType)
		}
		if info.Size > 0 {
			w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
		}
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		w.WriteHeader(http.StatusOK)
		if _, err := io.Copy(w, body); err != nil {
			h.logger.Warn().Err(err).Str("key", key).Msg("media stream interrupted")
		}
	}
}
