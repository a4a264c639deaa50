package handler

import (
	"net/http"

	"github.com/sprinta-dev/headhunter/backend/internal/security"
)

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	principal := r.Context().Value(PrincipalCtxKey).(*security.Principal)

	user, err := h.users.FindByEmail(r.Context(), principal.Subject)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.successResponse(w, r, "Find Me Success", user)
}
