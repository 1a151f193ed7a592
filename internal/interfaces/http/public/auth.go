package public

import (
	"net/http"

	"github.com/sngm3741/hairline-directory/api/internal/directory/application"
	"github.com/sngm3741/hairline-directory/api/internal/directory/domain"
	"github.com/sngm3741/hairline-directory/api/internal/interfaces/http/common"
)

func (h *Handler) signUpHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signUpRequest
		if err := common.DecodeJSON(w, r, common.MaxJSONRequestBody, &req); err != nil {
			common.WriteError(h.logger, w, err)
			return
		}

		ctx, cancel := h.requestContext(r)
		defer cancel()

		user, err := h.service.SignUp(ctx, application.SignUpCommand{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		h.writeAuth(w, http.StatusCreated, *user)
	}
}

func (h *Handler) loginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := common.DecodeJSON(w, r, common.MaxJSONRequestBody, &req); err != nil {
			common.WriteError(h.logger, w, err)
			return
		}

		ctx, cancel := h.requestContext(r)
		defer cancel()

		user, err := h.service.Login(ctx, req.Email, req.Password)
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		h.writeAuth(w, http.StatusOK, *user)
	}
}

func (h *Handler) logoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := h.requestContext(r)
		defer cancel()

		if err := h.service.Logout(ctx); err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Handler) sessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := h.requestContext(r)
		defer cancel()

		user, err := h.service.CurrentUser(ctx)
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, sessionResponse{User: user})
	}
}

func (h *Handler) writeAuth(w http.ResponseWriter, status int, user domain.User) {
	token, err := h.tokens.Issue(user)
	if err != nil {
		common.WriteError(h.logger, w, err)
		return
	}
	common.WriteJSON(h.logger, w, status, authResponse{User: user, Token: token})
}
