package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"strings"
	"time"

	"github.com/sprinta-dev/headhunter/backend/internal/security"
)

type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
}

func (rw *ResponseWriter) WriteHeader(statusCode int) {
	rw.StatusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (h *Handler) logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &ResponseWriter{ResponseWriter: w, StatusCode: http.StatusOK}
		next.ServeHTTP(rw, r)
		duration := time.Since(start)
		slog.Info("request handled", "status", rw.StatusCode, "ip", r.RemoteAddr, "method", r.Method, "path", r.URL.Path, "duration", duration)
	})
}

func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.internalServerError(w, r, fmt.Errorf("panic: %v", err))
				stackTrace := string(debug.Stack())
				fmt.Print(stackTrace) // 堆栈直接打印，用 slog 输出会挤成一行
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// auth 校验 Authorization 头中的 bearer token，并把 Principal 放进 context
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(tokenString) == "" {
			h.errorResponse(w, r, StatusUnauthorized, "Login credentials are missing.")
			return
		}

		principal, err := h.tokens.Verify(strings.TrimSpace(tokenString))
		if err != nil {
			slog.Debug("rejected bearer token", "path", r.URL.Path, "error", err)
			h.errorResponse(w, r, StatusUnauthorized, msgInvalidToken)
			return
		}

		ctx := context.WithValue(r.Context(), PrincipalCtxKey, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequiredAuthority 必须放在 auth 之后
func (h *Handler) RequiredAuthority(authority string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := r.Context().Value(PrincipalCtxKey).(*security.Principal)
			if !ok || !slices.Contains(principal.Authorities, authority) {
				h.errorResponse(w, r, StatusForbidden, msgNoPermission)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
