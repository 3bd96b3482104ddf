package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"estatehub/internal/careers/service"
	httputil "estatehub/pkg/http"
	"estatehub/pkg/logger"
	"estatehub/pkg/middleware"
	"estatehub/pkg/model"
)

const msgApplied = "Application submitted successfully"

type ApplicationHandler struct {
	service service.ApplicationService
	tokens  middleware.TokenParser
	log     *logger.Logger
}

func NewApplicationHandler(service service.ApplicationService, tokens middleware.TokenParser, log *logger.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		service: service,
		tokens:  tokens,
		log:     log,
	}
}

func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.CareerRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Apply", err)
		return
	}

	app, err := h.service.Apply(r.Context(), &req)
	if err != nil {
		h.writeError(w, "Apply", err)
		return
	}

	if err := httputil.WriteSubmitted(w, msgApplied, app.ID); err != nil {
		h.log.Error("failed to write submitted response", "handler", "Apply", "operation", "WriteSubmitted", "error", err)
	}
}

func (h *ApplicationHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	apps, total, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if err := httputil.WritePaginated(w, apps, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

func (h *ApplicationHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	app, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, app); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body model.ApplicationStatusUpdate
	if err := httputil.DecodeJSON(r, &body); err != nil {
		h.writeError(w, "UpdateStatus", err)
		return
	}

	if err := h.service.UpdateStatus(r.Context(), ps.ByName("id"), body.Status); err != nil {
		h.writeError(w, "UpdateStatus", err)
		return
	}

	if err := httputil.WriteMessage(w, "Status updated successfully"); err != nil {
		h.log.Error("failed to write message response", "handler", "UpdateStatus", "operation", "WriteMessage", "error", err)
	}
}

func (h *ApplicationHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	if err := httputil.WriteNoContent(w); err != nil {
		h.log.Error("failed to write no content response", "handler", "Delete", "operation", "WriteNoContent", "error", err)
	}
}

func (h *ApplicationHandler) Resume(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	target, err := h.service.ResumeURL(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "Resume", err)
		return
	}

	http.Redirect(w, r, target, http.StatusFound)
}

func (h *ApplicationHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *ApplicationHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/career", h.Apply)

	admin := middleware.RequireAdmin(h.tokens, h.log)
	router.GET("/api/admin/careers", admin(h.GetAll))
	router.GET("/api/admin/careers/:id", admin(h.GetByID))
	router.GET("/api/admin/careers/:id/resume", admin(h.Resume))
	router.PATCH("/api/admin/careers/:id/status", admin(h.UpdateStatus))
	router.DELETE("/api/admin/careers/:id", admin(h.Delete))
}
