// AngelaMos | 2026
// handler.go

package inquiry

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/keyurm111/eloska-luxe-showcase/internal/core"
	"github.com/keyurm111/eloska-luxe-showcase/internal/export"
	"github.com/keyurm111/eloska-luxe-showcase/internal/notify"
	"github.com/keyurm111/eloska-luxe-showcase/internal/store"
)

const defaultPageSize = 10

// Notifier accepts an event without waiting for delivery.
type Notifier interface {
	Enqueue(ev notify.Event)
}

type Handler struct {
	service   *Service
	notifier  Notifier
	exporter  *export.Exporter
	validator *validator.Validate
}

func NewHandler(service *Service, notifier Notifier, exporter *export.Exporter) *Handler {
	return &Handler{
		service:   service,
		notifier:  notifier,
		exporter:  exporter,
		validator: core.NewValidator(),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	submitLimiter func(http.Handler) http.Handler,
) {
	r.Route(h.service.Kind().Path, func(r chi.Router) {
		r.With(submitLimiter).Post("/submit", h.Submit)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)

			r.Get("/", h.List)
			r.Get("/stats", h.Stats)
			r.Get("/export", h.Export)
			r.Patch("/bulk-update", h.BulkUpdate)
			r.Get("/{id}", h.Get)
			r.Patch("/{id}/status", h.UpdateStatus)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	req := h.service.Kind().newSubmission()
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	req.normalize()
	if err := h.validator.Struct(req); err != nil {
		core.ValidationFailed(w, err)
		return
	}

	inq, err := h.service.Submit(r.Context(), req.inquiry())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, "Inquiry submitted successfully", SubmitResponse{
		ID:     inq.ID.Hex(),
		Status: inq.Status,
	})

	if h.notifier != nil {
		h.notifier.Enqueue(notify.Event{
			Kind:    h.service.Kind().Event,
			ReplyTo: inq.Email,
			Data:    eventData(inq),
		})
	}
}

func listParams(r *http.Request) ListParams {
	q := r.URL.Query()
	return ListParams{
		Status:   q.Get("status"),
		Category: q.Get("category"),
		Search:   q.Get("search"),
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := store.ParsePagination(r.URL.Query(), defaultPageSize, "createdAt", "status", "name")

	result, err := h.service.List(r.Context(), listParams(r), page)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, result.Items, result.Total, result.Page, result.Limit, result.TotalPages)
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, stats)
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.Export(r.Context(), listParams(r))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	kind := h.service.Kind()
	export.Stream(w, r, h.exporter, kind.ExportName(), kind.Columns, rows)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	inq, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, inq)
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

	inq, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OKMessage(w, "Status updated", inq)
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

	inq, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OKMessage(w, h.service.Kind().Resource+" updated", inq)
}

func (h *Handler) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	var req BulkUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.ValidationFailed(w, err)
		return
	}

	n, err := h.service.BulkUpdateStatus(r.Context(), req.IDs, req.Status)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, BulkUpdateResponse{ModifiedCount: n})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}

	core.OKMessage(w, h.service.Kind().Resource+" deleted", nil)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, core.ErrNotFound) {
		core.NotFound(w, h.service.Kind().Resource)
		return
	}
	core.InternalServerError(w, err)
}

// eventData leaves optional fields out when empty so templates can test
// for their presence.
func eventData(inq *Inquiry) map[string]any {
	data := map[string]any{
		"id":          inq.ID.Hex(),
		"name":        inq.Name,
		"email":       inq.Email,
		"phone":       inq.Phone,
		"message":     inq.Message,
		"submittedAt": inq.CreatedAt.Format("Mon, 02 Jan 2006 15:04 MST"),
	}

	optional := map[string]string{
		"company":     inq.Company,
		"productName": inq.ProductName,
		"productCode": inq.ProductCode,
		"category":    inq.Category,
		"subcategory": inq.Subcategory,
		"subject":     inq.Subject,
	}
	for k, v := range optional {
		if v != "" {
			data[k] = v
		}
	}
	if inq.Quantity > 0 {
		data["quantity"] = inq.Quantity
	}
	return data
}
