// AngelaMos | 2026
// handler.go

package category

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/keyurm111/eloska-luxe-showcase/internal/core"
	"github.com/keyurm111/eloska-luxe-showcase/internal/store"
)

const adminPageSize = 50

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

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.ListActive)
		r.Get("/collections", h.Tree)
		r.Get("/{collection}", h.ByCollection)
	})

	r.Route("/admin/categories", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.AdminList)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *Handler) ListActive(w http.ResponseWriter, r *http.Request) {
	cats, err := h.service.ListActive(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, cats)
}

func (h *Handler) Tree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.service.Tree(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, tree)
}

func (h *Handler) ByCollection(w http.ResponseWriter, r *http.Request) {
	collection, err := url.PathUnescape(chi.URLParam(r, "collection"))
	if err != nil {
		core.NotFound(w, "Collection")
		return
	}

	node, err := h.service.ByCollection(r.Context(), collection)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "Collection")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, node)
}

func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := store.ParsePagination(q, adminPageSize, "createdAt", "collection", "category", "sortOrder")

	params := AdminListParams{
		Collection: q.Get("collection"),
		Search:     q.Get("search"),
	}
	if active, err := strconv.ParseBool(q.Get("isActive")); err == nil {
		params.Active = &active
	}

	result, err := h.service.AdminList(r.Context(), params, page)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, result.Items, result.Total, result.Page, result.Limit, result.TotalPages)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, c)
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

	c, reactivated, err := h.service.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	if reactivated {
		core.OKMessage(w, "Category reactivated", c)
		return
	}
	core.Created(w, "Category created", c)
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

	c, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OKMessage(w, "Category updated", c)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	core.OKMessage(w, "Category deleted", nil)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "Category")
	case errors.Is(err, ErrCategoryExists):
		core.Conflict(w, "Category already exists")
	default:
		core.InternalServerError(w, err)
	}
}
