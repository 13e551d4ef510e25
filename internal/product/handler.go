// AngelaMos | 2026
// handler.go

package product

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/keyurm111/eloska-luxe-showcase/internal/core"
	"github.com/keyurm111/eloska-luxe-showcase/internal/middleware"
	"github.com/keyurm111/eloska-luxe-showcase/internal/store"
)

const defaultPageSize = 12

var sortable = []string{"createdAt", "price", "name", "stockQuantity"}

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: core.NewValidator(),
	}
}

// RegisterRoutes mounts the catalogue. Reads are public; optionalAuth lets
// an admin token widen them to every status.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	optionalAuth func(http.Handler) http.Handler,
) {
	r.Route("/products", func(r chi.Router) {
		r.With(optionalAuth).Get("/", h.List)
		r.With(optionalAuth).Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)

			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Patch("/{id}/status", h.UpdateStatus)
			r.Delete("/{id}", h.Delete)
		})
	})
}

func parseBool(q url.Values, key string) *bool {
	v, err := strconv.ParseBool(q.Get(key))
	if err != nil {
		return nil
	}
	return &v
}

func parseFloat(q url.Values, key string) *float64 {
	v, err := strconv.ParseFloat(q.Get(key), 64)
	if err != nil {
		return nil
	}
	return &v
}

func listParams(q url.Values) ListParams {
	return ListParams{
		Collection:  q.Get("collection"),
		Category:    q.Get("category"),
		Subcategory: q.Get("subcategory"),
		Status:      q.Get("status"),
		Search:      strings.TrimSpace(q.Get("search")),
		Featured:    parseBool(q, "featured"),
		InStock:     parseBool(q, "inStock"),
		MinPrice:    parseFloat(q, "minPrice"),
		MaxPrice:    parseFloat(q, "maxPrice"),
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := store.ParsePagination(q, defaultPageSize, sortable...)
	admin := middleware.IsAuthenticated(r.Context())

	result, err := h.service.List(r.Context(), listParams(q), admin, page)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	items := make([]Response, len(result.Items))
	for i := range result.Items {
		items[i] = ToResponse(&result.Items[i])
	}

	core.Paginated(w, items, result.Total, result.Page, result.Limit, result.TotalPages)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	admin := middleware.IsAuthenticated(r.Context())

	p, err := h.service.Get(r.Context(), chi.URLParam(r, "id"), admin)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ToResponse(p))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	req.normalize()
	if err := h.validator.Struct(req); err != nil {
		core.ValidationFailed(w, err)
		return
	}

	p, err := h.service.Create(r.Context(), req)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, "Product created", ToResponse(p))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.ValidationFailed(w, err)
		return
	}

	p, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OKMessage(w, "Product updated", ToResponse(p))
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.ValidationFailed(w, err)
		return
	}

	p, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OKMessage(w, "Status updated", ToResponse(p))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	core.OKMessage(w, "Product deleted", nil)
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, core.ErrNotFound) {
		core.NotFound(w, "Product")
		return
	}
	core.InternalServerError(w, err)
}
