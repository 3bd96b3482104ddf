package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"estatehub/internal/admins/service"
	"estatehub/pkg/auth"
	apperrors "estatehub/pkg/errors"
	httputil "estatehub/pkg/http"
	"estatehub/pkg/logger"
	"estatehub/pkg/middleware"
	"estatehub/pkg/model"
)

const (
	msgResetCodeSent = "If the email is registered, a reset code has been sent"
	msgPasswordReset = "Password has been reset successfully"
)

type AdminHandler struct {
	service service.AdminService
	tokens  middleware.TokenParser
	log     *logger.Logger
}

func NewAdminHandler(service service.AdminService, tokens middleware.TokenParser, log *logger.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		tokens:  tokens,
		log:     log,
	}
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.LoginRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Login", err)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		h.writeError(w, "Login", err)
		return
	}

	if err := httputil.WriteSuccess(w, resp); err != nil {
		h.log.Error("failed to write success response", "handler", "Login", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AdminHandler) RequestResetOTP(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.ResetOTPRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "RequestResetOTP", err)
		return
	}

	if err := h.service.RequestResetOTP(r.Context(), &req); err != nil {
		h.writeError(w, "RequestResetOTP", err)
		return
	}

	if err := httputil.WriteMessage(w, msgResetCodeSent); err != nil {
		h.log.Error("failed to write message response", "handler", "RequestResetOTP", "operation", "WriteMessage", "error", err)
	}
}

func (h *AdminHandler) ResetPassword(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.ResetPasswordRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "ResetPassword", err)
		return
	}

	if err := h.service.ResetPassword(r.Context(), &req); err != nil {
		h.writeError(w, "ResetPassword", err)
		return
	}

	if err := httputil.WriteMessage(w, msgPasswordReset); err != nil {
		h.log.Error("failed to write message response", "handler", "ResetPassword", "operation", "WriteMessage", "error", err)
	}
}

func (h *AdminHandler) Me(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		h.writeError(w, "Me", apperrors.Unauthorized("Missing bearer token"))
		return
	}

	admin, err := h.service.Me(r.Context(), claims.AdminID())
	if err != nil {
		h.writeError(w, "Me", err)
		return
	}

	if err := httputil.WriteSuccess(w, admin); err != nil {
		h.log.Error("failed to write success response", "handler", "Me", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AdminHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *AdminHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/admin/login", h.Login)
	router.POST("/api/admin/request-reset-otp", h.RequestResetOTP)
	router.POST("/api/admin/reset-password", h.ResetPassword)

	router.GET("/api/admin/me", middleware.RequireAdmin(h.tokens, h.log)(h.Me))
}
