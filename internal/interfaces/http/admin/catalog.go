package admin

import (
	"net/http"

	"github.com/sngm3741/hairline-directory/api/internal/directory/domain"
	"github.com/sngm3741/hairline-directory/api/internal/interfaces/http/common"
)

// saveStatus is 201 for POST (create) and 200 for PUT (upsert by path id).
func saveStatus(r *http.Request) int {
	if r.Method == http.MethodPost {
		return http.StatusCreated
	}
	return http.StatusOK
}

func (h *Handler) clinicSaveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var clinic domain.Clinic
		if err := common.DecodeJSON(w, r, common.MaxUploadRequestBody, &clinic); err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		clinic.ID = pathID(r)

		ctx, cancel := h.requestContext(r)
		defer cancel()

		saved, err := h.service.SaveClinic(ctx, clinic)
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, saveStatus(r), saved)
	}
}

func (h *Handler) blogPostSaveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var post domain.BlogPost
		if err := common.DecodeJSON(w, r, common.MaxUploadRequestBody, &post); err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		post.ID = pathID(r)

		ctx, cancel := h.requestContext(r)
		defer cancel()

		saved, err := h.service.SaveBlogPost(ctx, post)
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, saveStatus(r), saved)
	}
}

func (h *Handler) blogPostDeleteHandler() http.HandlerFunc {
	return h.denyHandler(func(r *http.Request) error {
		ctx, cancel := h.requestContext(r)
		defer cancel()
		return h.service.DeleteBlogPost(ctx, pathID(r))
	})
}

func (h *Handler) productSaveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var product domain.ProductReview
		if err := common.DecodeJSON(w, r, common.MaxUploadRequestBody, &product); err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		product.ID = pathID(r)

		ctx, cancel := h.requestContext(r)
		defer cancel()

		saved, err := h.service.SaveProductReview(ctx, product)
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, saveStatus(r), saved)
	}
}

func (h *Handler) productDeleteHandler() http.HandlerFunc {
	return h.denyHandler(func(r *http.Request) error {
		ctx, cancel := h.requestContext(r)
		defer cancel()
		return h.service.DeleteProductReview(ctx, pathID(r))
	})
}
