// AngelaMos | 2026
// handler.go

package newsletter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/keyurm111/eloska-luxe-showcase/internal/core"
	"github.com/keyurm111/eloska-luxe-showcase/internal/export"
	"github.com/keyurm111/eloska-luxe-showcase/internal/notify"
	"github.com/keyurm111/eloska-luxe-showcase/internal/store"
)

const (
	defaultPageSize = 10
	exportName      = "newsletter-subscribers"
)

var Columns = []export.Column[Subscriber]{
	{Header: "Email", Value: func(s Subscriber) string { return s.Email }},
	{Header: "Status", Value: func(s Subscriber) string { return string(s.Status) }},
	{Header: "Source", Value: func(s Subscriber) string { return s.Source }},
	{Header: "Tags", Value: func(s Subscriber) string { return export.Join(s.Tags) }},
	{Header: "Subscribed At", Value: func(s Subscriber) string { return export.Time(s.SubscribedAt) }},
	{Header: "Unsubscribed At", Value: func(s Subscriber) string { return export.TimePtr(s.UnsubscribedAt) }},
}

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
	r.Route("/newsletter", func(r chi.Router) {
		r.With(submitLimiter).Post("/subscribe", h.Subscribe)
		r.With(submitLimiter).Post("/unsubscribe", h.Unsubscribe)

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

func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if err := h.validator.Struct(req); err != nil {
		core.ValidationFailed(w, err)
		return
	}

	res, err := h.service.Subscribe(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrAlreadySubscribed) {
			core.Conflict(w, "Email is already subscribed to the newsletter")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	if res.Reactivated {
		core.OKMessage(w, "Welcome back! Your subscription has been reactivated", nil)
	} else {
		core.Created(w, "Successfully subscribed to the newsletter", nil)
	}

	if h.notifier != nil {
		data := map[string]any{
			"email":  res.Subscriber.Email,
			"source": res.Subscriber.Source,
		}
		if res.Reactivated {
			data["reactivated"] = true
		}
		h.notifier.Enqueue(notify.Event{
			Kind:    notify.KindNewsletter,
			ReplyTo: res.Subscriber.Email,
			Data:    data,
		})
	}
}

func (h *Handler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req UnsubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if err := h.validator.Struct(req); err != nil {
		core.ValidationFailed(w, err)
		return
	}

	if _, err := h.service.Unsubscribe(r.Context(), req.Email); err != nil {
		h.writeError(w, err)
		return
	}

	core.OKMessage(w, "Successfully unsubscribed from the newsletter", nil)
}

func listParams(r *http.Request) ListParams {
	q := r.URL.Query()
	return ListParams{
		Status: q.Get("status"),
		Source: q.Get("source"),
		Search: q.Get("search"),
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := store.ParsePagination(r.URL.Query(), defaultPageSize, "createdAt", "subscribedAt", "email", "status")

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

	export.Stream(w, r, h.exporter, exportName, Columns, rows)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	sub, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, sub)
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

	sub, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OKMessage(w, "Status updated", sub)
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

	sub, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OKMessage(w, "Subscriber updated", sub)
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

	core.OKMessage(w, "Subscriber deleted", nil)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, core.ErrNotFound) {
		core.NotFound(w, "Subscriber")
		return
	}
	core.InternalServerError(w, err)
}
