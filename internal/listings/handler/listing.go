package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"estatehub/internal/listings/service"
	httputil "estatehub/pkg/http"
	"estatehub/pkg/logger"
	"estatehub/pkg/middleware"
	"estatehub/pkg/model"
)

const (
	msgPropertyAdded     = "Property added successfully"
	msgPropertySubmitted = "Property submitted successfully"
)

type ListingHandler struct {
	service service.ListingService
	tokens  middleware.TokenParser
	log     *logger.Logger
}

func NewListingHandler(service service.ListingService, tokens middleware.TokenParser, log *logger.Logger) *ListingHandler {
	return &ListingHandler{
		service: service,
		tokens:  tokens,
		log:     log,
	}
}

func (h *ListingHandler) Create(origin model.ListingOrigin) httprouter.Handle {
	message := msgPropertyAdded
	if origin == model.OriginUser {
		message = msgPropertySubmitted
	}

	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var l model.Listing
		if err := httputil.DecodeJSON(r, &l); err != nil {
			h.writeError(w, "Create", err)
			return
		}
		l.Origin = origin

		if err := h.service.Create(r.Context(), &l); err != nil {
			h.writeError(w, "Create", err)
			return
		}

		if err := httputil.WriteSubmitted(w, message, l.ID); err != nil {
			h.log.Error("failed to write submitted response", "handler", "Create", "operation", "WriteSubmitted", "error", err)
		}
	}
}

func (h *ListingHandler) GetAll(origin model.ListingOrigin) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		limit, offset, err := httputil.ExtractLimitOffset(r)
		if err != nil {
			h.writeError(w, "GetAll", err)
			return
		}

		listings, total, err := h.service.GetAll(r.Context(), origin, limit, offset)
		if err != nil {
			h.writeError(w, "GetAll", err)
			return
		}

		if err := httputil.WritePaginated(w, listings, total, limit, offset); err != nil {
			h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
		}
	}
}

func (h *ListingHandler) Update(origin model.ListingOrigin) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		var updates model.ListingUpdate
		if err := httputil.DecodeJSON(r, &updates); err != nil {
			h.writeError(w, "Update", err)
			return
		}

		l, err := h.service.Update(r.Context(), origin, ps.ByName("id"), &updates)
		if err != nil {
			h.writeError(w, "Update", err)
			return
		}

		if err := httputil.WriteSuccess(w, l); err != nil {
			h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
		}
	}
}

func (h *ListingHandler) Delete(origin model.ListingOrigin) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if err := h.service.Delete(r.Context(), origin, ps.ByName("id")); err != nil {
			h.writeError(w, "Delete", err)
			return
		}

		if err := httputil.WriteNoContent(w); err != nil {
			h.log.Error("failed to write no content response", "handler", "Delete", "operation", "WriteNoContent", "error", err)
		}
	}
}

func (h *ListingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	l, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}
	h.writeSuccess(w, "GetByID", l)
}

func (h *ListingHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	includeUsers, _ := strconv.ParseBool(query.Get("includeUsers"))

	results, err := h.service.Search(r.Context(), model.ListingQuery{
		Location:     query.Get("location"),
		BHK:          query.Get("bhk"),
		Builder:      query.Get("builder"),
		Status:       query.Get("status"),
		ProjectType:  query.Get("projectType"),
		SearchTerm:   query.Get("searchTerm"),
		IncludeUsers: includeUsers,
	})
	if err != nil {
		h.writeError(w, "Search", err)
		return
	}
	h.writeSuccess(w, "Search", results)
}

func (h *ListingHandler) Locations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	values, err := h.service.Locations(r.Context())
	if err != nil {
		h.writeError(w, "Locations", err)
		return
	}
	h.writeSuccess(w, "Locations", values)
}

func (h *ListingHandler) Builders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	values, err := h.service.Builders(r.Context())
	if err != nil {
		h.writeError(w, "Builders", err)
		return
	}
	h.writeSuccess(w, "Builders", values)
}

func (h *ListingHandler) ByLocation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	listings, err := h.service.ByLocation(r.Context(), ps.ByName("location"))
	if err != nil {
		h.writeError(w, "ByLocation", err)
		return
	}
	h.writeSuccess(w, "ByLocation", listings)
}

func (h *ListingHandler) ByBuilder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	listings, err := h.service.ByBuilder(r.Context(), ps.ByName("builder"))
	if err != nil {
		h.writeError(w, "ByBuilder", err)
		return
	}
	h.writeSuccess(w, "ByBuilder", listings)
}

func (h *ListingHandler) writeSuccess(w http.ResponseWriter, handler string, data any) {
	if err := httputil.WriteSuccess(w, data); err != nil {
		h.log.Error("failed to write success response", "handler", handler, "operation", "WriteSuccess", "error", err)
	}
}

func (h *ListingHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *ListingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/user-properties", h.Create(model.OriginUser))
	router.GET("/api/user-properties", h.GetAll(model.OriginUser))

	router.GET("/api/projects/search", h.Search)
	router.GET("/api/projects/locations", h.Locations)
	router.GET("/api/projects/builders", h.Builders)

	router.GET("/api/properties/id/:id", h.GetByID)
	router.GET("/api/properties/location/:location", h.ByLocation)
	router.GET("/api/properties/builder/:builder", h.ByBuilder)

	admin := middleware.RequireAdmin(h.tokens, h.log)
	router.POST("/api/admin/properties", admin(h.Create(model.OriginAdmin)))
	router.GET("/api/admin/properties", admin(h.GetAll(model.OriginAdmin)))
	router.PUT("/api/admin/properties/:id", admin(h.Update(model.OriginAdmin)))
	router.DELETE("/api/admin/properties/:id", admin(h.Delete(model.OriginAdmin)))
	router.PUT("/api/admin/user-properties/:id", admin(h.Update(model.OriginUser)))
	router.DELETE("/api/admin/user-properties/:id", admin(h.Delete(model.OriginUser)))
}
