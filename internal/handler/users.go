package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sprinta-dev/headhunter/backend/internal/domain"
)

type userRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Roles    string `json:"roles"`
}

func (h *Handler) FindAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.FindAll(r.Context())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "Find All User Success", users)
}

func (h *Handler) FindUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.FindByEmail(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "Find One User Success", user)
}

// RegisterUser 是公开接口，请求中的 roles 会被忽略
func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	user, err := h.users.Register(r.Context(), &domain.User{
		Email:    req.Email,
		Username: req.Username,
	}, req.Password)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.notifyWelcome(user)
	h.successResponse(w, r, "Add User Success", user)
}

func (h *Handler) AddUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	user, err := h.users.Save(r.Context(), &domain.User{
		Email:    req.Email,
		Username: req.Username,
		Roles:    req.Roles,
	}, req.Password)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.notifyWelcome(user)
	h.successResponse(w, r, "Add Success", user)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Roles    string `json:"roles" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	user, err := h.users.Update(r.Context(), chi.URLParam(r, "email"), req.Username, req.Roles)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "Update User Success", user)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Delete(r.Context(), chi.URLParam(r, "email")); err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "Delete User Success", nil)
}
