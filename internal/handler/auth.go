package handler

import (
	"net/http"

	"github.com/sprinta-dev/headhunter/backend/internal/domain"
)

type loginResponse struct {
	UserInfo any    `json:"userInfo"`
	Token    string `json:"token"`
}

// Login 使用 HTTP Basic（邮箱:密码）认证，成功后签发 JWT
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	email, password, ok := r.BasicAuth()
	if !ok {
		h.errorResponse(w, r, StatusUnauthorized, domain.ErrBadCredentials.Error())
		return
	}

	user, err := h.users.Authenticate(r.Context(), email, password)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	token, err := h.tokens.Issue(user.Email, user.Authorities())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "User Info and JSON Web Token", loginResponse{
		UserInfo: user,
		Token:    token,
	})
}
