package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"estatehub/internal/newsletter/service"
	httputil "estatehub/pkg/http"
	"estatehub/pkg/logger"
	"estatehub/pkg/middleware"
	"estatehub/pkg/model"
)

const (
	msgSubscribed   = "Successfully subscribed to newsletter!"
	msgUnsubscribed = "You have been unsubscribed from our newsletter"
)

type SubscriptionHandler struct {
	service service.SubscriptionService
	tokens  middleware.TokenParser
	log     *logger.Logger
}

func NewSubscriptionHandler(service service.SubscriptionService, tokens middleware.TokenParser, log *logger.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		service: service,
		tokens:  tokens,
		log:     log,
	}
}

func (h *SubscriptionHandler) Subscribe(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.NewsletterRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Subscribe", err)
		return
	}

	sub, err := h.service.Subscribe(r.Context(), &req)
	if err != nil {
		h.writeError(w, "Subscribe", err)
		return
	}

	if err := httputil.WriteSubmitted(w, msgSubscribed, sub.ID); err != nil {
		h.log.Error("failed to write submitted response", "handler", "Subscribe", "operation", "WriteSubmitted", "error", err)
	}
}

func (h *SubscriptionHandler) Unsubscribe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Unsubscribe(r.Context(), ps.ByName("token")); err != nil {
		h.writeError(w, "Unsubscribe", err)
		return
	}

	if err := httputil.WriteMessage(w, msgUnsubscribed); err != nil {
		h.log.Error("failed to write message response", "handler", "Unsubscribe", "operation", "WriteMessage", "error", err)
	}
}

func (h *SubscriptionHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	subs, total, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if err := httputil.WritePaginated(w, subs, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

func (h *SubscriptionHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	if err := httputil.WriteNoContent(w); err != nil {
		h.log.Error("failed to write no content response", "handler", "Delete", "operation", "WriteNoContent", "error", err)
	}
}

func (h *SubscriptionHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *SubscriptionHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/newsletter", h.Subscribe)
	router.GET("/api/newsletter/unsubscribe/:token", h.Unsubscribe)

	admin := middleware.RequireAdmin(h.tokens, h.log)
	router.GET("/api/admin/newsletter", admin(h.GetAll))
	router.DELETE("/api/admin/newsletter/:id", admin(h.Delete))
}
