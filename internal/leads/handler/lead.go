package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"estatehub/internal/leads/repository"
	"estatehub/internal/leads/service"
	apperrors "estatehub/pkg/errors"
	httputil "estatehub/pkg/http"
	"estatehub/pkg/logger"
	"estatehub/pkg/middleware"
	"estatehub/pkg/model"
)

// submission binds a public route to its payload type and success message.
type submission struct {
	path    string
	newReq  func() model.LeadRequest
	message string
}

var submissions = []submission{
	{"/api/inquiry", func() model.LeadRequest { return &model.InquiryRequest{} }, "Inquiry submitted successfully"},
	{"/api/builder-inquiry", func() model.LeadRequest { return &model.BuilderInquiryRequest{} }, "Builder inquiry submitted successfully"},
	{"/api/location-inquiry", func() model.LeadRequest { return &model.LocationInquiryRequest{} }, "Thank you for your interest! Our team will contact you soon."},
	{"/api/project-callback", func() model.LeadRequest { return &model.ProjectCallbackRequest{} }, "Request submitted successfully"},
	{"/api/user-project-callback", func() model.LeadRequest { return &model.UserProjectCallbackRequest{} }, "Request submitted successfully"},
	{"/api/search-box-enquiries", func() model.LeadRequest { return &model.SearchBoxRequest{} }, "Enquiry submitted successfully"},
}

type LeadHandler struct {
	service service.LeadService
	tokens  middleware.TokenParser
	log     *logger.Logger
}

func NewLeadHandler(service service.LeadService, tokens middleware.TokenParser, log *logger.Logger) *LeadHandler {
	return &LeadHandler{
		service: service,
		tokens:  tokens,
		log:     log,
	}
}

func (h *LeadHandler) Submit(newReq func() model.LeadRequest, message string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		req := newReq()
		if err := httputil.DecodeJSON(r, req); err != nil {
			h.writeError(w, "Submit", err)
			return
		}

		lead, err := h.service.Submit(r.Context(), req)
		if err != nil {
			h.writeError(w, "Submit", err)
			return
		}

		if err := httputil.WriteSubmitted(w, message, lead.ID); err != nil {
			h.log.Error("failed to write submitted response", "handler", "Submit", "operation", "WriteSubmitted", "error", err)
		}
	}
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	kind, ok := h.kind(w, ps, "List")
	if !ok {
		return
	}

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}
	from, to, err := httputil.ExtractDateRange(r)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	query := r.URL.Query()
	filter := repository.LeadFilter{
		Query:  query.Get("q"),
		From:   from,
		To:     to,
		Status: model.LeadStatus(query.Get("status")),
	}

	leads, total, err := h.service.List(r.Context(), kind, filter, limit, offset)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	if err := httputil.WritePaginated(w, leads, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "List", "operation", "WritePaginated", "error", err)
	}
}

func (h *LeadHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	kind, ok := h.kind(w, ps, "GetByID")
	if !ok {
		return
	}

	lead, err := h.service.GetByID(r.Context(), kind, ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, lead); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	kind, ok := h.kind(w, ps, "Update")
	if !ok {
		return
	}

	var updates model.LeadUpdate
	if err := httputil.DecodeJSON(r, &updates); err != nil {
		h.writeError(w, "Update", err)
		return
	}

	lead, err := h.service.Update(r.Context(), kind, ps.ByName("id"), &updates)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, lead); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *LeadHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	kind, ok := h.kind(w, ps, "UpdateStatus")
	if !ok {
		return
	}

	var body model.LeadStatusUpdate
	if err := httputil.DecodeJSON(r, &body); err != nil {
		h.writeError(w, "UpdateStatus", err)
		return
	}

	if err := h.service.UpdateStatus(r.Context(), kind, ps.ByName("id"), body.Status); err != nil {
		h.writeError(w, "UpdateStatus", err)
		return
	}

	if err := httputil.WriteMessage(w, "Status updated successfully"); err != nil {
		h.log.Error("failed to write message response", "handler", "UpdateStatus", "operation", "WriteMessage", "error", err)
	}
}

func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	kind, ok := h.kind(w, ps, "Delete")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), kind, ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	if err := httputil.WriteNoContent(w); err != nil {
		h.log.Error("failed to write no content response", "handler", "Delete", "operation", "WriteNoContent", "error", err)
	}
}

func (h *LeadHandler) kind(w http.ResponseWriter, ps httprouter.Params, handler string) (model.LeadKind, bool) {
	kind, err := model.ParseLeadKind(ps.ByName("kind"))
	if err != nil {
		h.writeError(w, handler, apperrors.NotFound("Lead kind"))
		return "", false
	}
	return kind, true
}

func (h *LeadHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *LeadHandler) RegisterRoutes(router *httprouter.Router) {
	for _, s := range submissions {
		router.POST(s.path, h.Submit(s.newReq, s.message))
	}

	admin := middleware.RequireAdmin(h.tokens, h.log)
	router.GET("/api/admin/leads/:kind", admin(h.List))
	router.GET("/api/admin/leads/:kind/:id", admin(h.GetByID))
	router.PUT("/api/admin/leads/:kind/:id", admin(h.Update))
	router.PATCH("/api/admin/leads/:kind/:id/status", admin(h.UpdateStatus))
	router.DELETE("/api/admin/leads/:kind/:id", admin(h.Delete))
}
