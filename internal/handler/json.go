package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sprinta-dev/headhunter/backend/internal/domain"
)

const (
	StatusSuccess             = http.StatusOK
	StatusInvalidArgument     = http.StatusBadRequest
	StatusUnauthorized        = http.StatusUnauthorized
	StatusForbidden           = http.StatusForbidden
	StatusNotFound            = http.StatusNotFound
	StatusConflict            = http.StatusConflict
	StatusInternalServerError = http.StatusInternalServerError
)

const (
	msgInternalServerError = "Internal server error, please contact the administrator"
	msgInvalidToken        = "The access token provided is expired, revoked, malformed, or invalid for other reasons."
	msgNoPermission        = "No permission."
	msgEmailExists         = "Email already exists"
)

// Result 是所有接口统一的响应格式，HTTP 状态码与 Code 一致
type Result struct {
	Flag    bool   `json:"flag"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func (h *Handler) logInternalServerError(r *http.Request, err error) {
	slog.Error("internal server error", "method", r.Method, "path", r.URL.Path, "error", err)
}

func (h *Handler) readJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logInternalServerError(r, err)
	}
}

func (h *Handler) result(w http.ResponseWriter, r *http.Request, code int, msg string, data any) {
	h.writeJSON(w, r, code, Result{
		Flag:    code == StatusSuccess,
		Code:    code,
		Message: msg,
		Data:    data,
	})
}

func (h *Handler) successResponse(w http.ResponseWriter, r *http.Request, msg string, data any) {
	h.result(w, r, StatusSuccess, msg, data)
}

func (h *Handler) errorResponse(w http.ResponseWriter, r *http.Request, code int, msg string) {
	h.result(w, r, code, msg, nil)
}

func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		h.errorResponse(w, r, StatusInvalidArgument, err.Error())
		return
	}

	h.errorResponse(w, r, StatusInvalidArgument, validationErrors[0].Translate(h.translator))
}

func (h *Handler) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	h.logInternalServerError(r, err)
	h.errorResponse(w, r, StatusInternalServerError, msgInternalServerError)
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.errorResponse(w, r, StatusNotFound, "This API endpoint is not found.")
}

// serviceError 把服务层返回的错误映射成对应的 Result
func (h *Handler) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		notFound    *domain.NotFoundError
		invalidRole *domain.InvalidRoleError
		pgErr       *pgconn.PgError
	)

	switch {
	case errors.As(err, &notFound):
		h.errorResponse(w, r, StatusNotFound, notFound.Error())
	case errors.Is(err, domain.ErrDoesNotExist):
		h.errorResponse(w, r, StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrEditConflict):
		h.errorResponse(w, r, StatusConflict, err.Error())
	case errors.As(err, &invalidRole):
		h.errorResponse(w, r, StatusInvalidArgument, invalidRole.Error())
	case errors.Is(err, domain.ErrBadCredentials):
		h.errorResponse(w, r, StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrNotPureHTML), errors.Is(err, domain.ErrUpstream):
		h.logInternalServerError(r, err)
		h.errorResponse(w, r, StatusInternalServerError, err.Error())
	case errors.As(err, &pgErr) && pgErr.ConstraintName == "users_email_key":
		h.errorResponse(w, r, StatusInvalidArgument, msgEmailExists)
	default:
		h.internalServerError(w, r, err)
	}
}
