// AngelaMos | 2026
// handler_test.go

package inquiry

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/keyurm111/eloska-luxe-showcase/internal/config"
	"github.com/keyurm111/eloska-luxe-showcase/internal/export"
	"github.com/keyurm111/eloska-luxe-showcase/internal/middleware"
	"github.com/keyurm111/eloska-luxe-showcase/internal/notify"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []notify.Event
}

func (n *recordingNotifier) Enqueue(ev notify.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
}

type slowTransport struct {
	delay time.Duration
	sent  chan struct{}
}

func (s *slowTransport) Name() string { return "slow" }

func (s *slowTransport) Send(ctx context.Context, _ notify.Message) error {
	select {
	case <-time.After(s.delay):
		close(s.sent)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type denyAll struct{}

func (denyAll) VerifyAccessToken(context.Context, string) (*middleware.AccessTokenClaims, error) {
	return nil, assert.AnError
}

type allowAll struct{}

func (allowAll) VerifyAccessToken(context.Context, string) (*middleware.AccessTokenClaims, error) {
	return &middleware.AccessTokenClaims{AdminID: primitive.NewObjectID().Hex(), Role: "admin"}, nil
}

func passThrough(next http.Handler) http.Handler { return next }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRouter(t *testing.T, kind Kind, notifier Notifier, verifier middleware.TokenVerifier) (chi.Router, *fakeRepo) {
	t.Helper()

	repo := newFakeRepo()
	exporter := export.NewExporter(config.ExportConfig{TmpDir: t.TempDir()}, nil, discardLogger())
	h := NewHandler(NewService(kind, repo), notifier, exporter)

	r := chi.NewRouter()
	h.RegisterRoutes(r, middleware.Authenticator(verifier), passThrough)
	return r, repo
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

func do(t *testing.T, r http.Handler, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func productSubmission() map[string]any {
	return map[string]any{
		"name":        "A",
		"email":       "a@b.com",
		"phone":       "1234567890",
		"productName": "X",
		"productCode": "X1",
		"category":    "Mirror Collection",
		"quantity":    5,
		"message":     "need 5 units",
	}
}

func TestSubmitThenGet(t *testing.T) {
	notifier := &recordingNotifier{}
	r, _ := newRouter(t, ProductKind, notifier, allowAll{})

	rec, env := do(t, r, http.MethodPost, "/product-inquiries/submit", productSubmission())
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Success)

	var created SubmitResponse
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, StatusPending, created.Status)
	require.True(t, primitive.IsValidObjectID(created.ID))

	rec, env = do(t, r, http.MethodGet, "/product-inquiries/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got Inquiry
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, created.ID, got.ID.Hex())
	assert.Equal(t, StatusPending, got.Status)
	assert.Equal(t, 5, got.Quantity)

	require.Len(t, notifier.events, 1)
	ev := notifier.events[0]
	assert.Equal(t, notify.KindProductInquiry, ev.Kind)
	assert.Equal(t, "a@b.com", ev.ReplyTo)
	assert.Equal(t, "X", ev.Data["productName"])
}

func TestSubmitNormalizesInput(t *testing.T) {
	r, repo := newRouter(t, NormalKind, nil, allowAll{})

	rec, _ := do(t, r, http.MethodPost, "/normal-inquiries/submit", map[string]any{
		"name":    "  Ravi  ",
		"email":   " Ravi@Example.COM ",
		"phone":   "+91 (98) 765-4321",
		"subject": " Bulk ",
		"message": "hello",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	items := repo.all()
	require.Len(t, items, 1)
	assert.Equal(t, "Ravi", items[0].Name)
	assert.Equal(t, "ravi@example.com", items[0].Email)
	assert.Equal(t, "Bulk", items[0].Subject)
}

func TestSubmitIsNotDelayedBySlowTransport(t *testing.T) {
	renderer, err := notify.NewRenderer()
	require.NoError(t, err)

	slow := &slowTransport{delay: 300 * time.Millisecond, sent: make(chan struct{})}
	d := notify.NewDispatcher(
		notify.DispatcherConfig{
			From:       "Eloska <no-reply@eloska.com>",
			Recipients: []string{"owner@eloska.com"},
			Timeout:    5 * time.Second,
			Workers:    1,
		},
		renderer,
		[]notify.Transport{slow},
		discardLogger(),
	)
	d.Start()

	r, _ := newRouter(t, ProductKind, d, allowAll{})

	start := time.Now()
	rec, _ := do(t, r, http.MethodPost, "/product-inquiries/submit", productSubmission())
	elapsed := time.Since(start)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Less(t, elapsed, 200*time.Millisecond)

	select {
	case <-slow.sent:
	case <-time.After(5 * time.Second):
		t.Fatal("notification never delivered")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, d.Shutdown(ctx))
}

func TestSubmitValidationErrors(t *testing.T) {
	notifier := &recordingNotifier{}
	r, repo := newRouter(t, ProductKind, notifier, allowAll{})

	body := productSubmission()
	body["email"] = "not-an-email"
	body["quantity"] = 0
	delete(body, "message")

	rec, env := do(t, r, http.MethodPost, "/product-inquiries/submit", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)

	fields := make([]string, 0, len(env.Errors))
	for _, e := range env.Errors {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{"email", "quantity", "message"}, fields)
	assert.Empty(t, repo.all())
	assert.Empty(t, notifier.events)
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	r, _ := newRouter(t, ProductKind, nil, denyAll{})

	paths := []struct{ method, path string }{
		{http.MethodGet, "/product-inquiries"},
		{http.MethodGet, "/product-inquiries/stats"},
		{http.MethodGet, "/product-inquiries/export"},
		{http.MethodDelete, "/product-inquiries/" + primitive.NewObjectID().Hex()},
	}
	for _, p := range paths {
		rec, env := do(t, r, p.method, p.path, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, p.path)
		assert.Equal(t, "Not authorized", env.Message)
	}

	rec, _ := do(t, r, http.MethodPost, "/product-inquiries/submit", productSubmission())
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestGetMalformedIDIsNotFound(t *testing.T) {
	r, _ := newRouter(t, NormalKind, nil, allowAll{})

	rec, env := do(t, r, http.MethodGet, "/normal-inquiries/not-an-id", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Inquiry not found", env.Message)
}

func TestDeleteTwice(t *testing.T) {
	r, _ := newRouter(t, ProductKind, nil, allowAll{})

	_, env := do(t, r, http.MethodPost, "/product-inquiries/submit", productSubmission())
	var created SubmitResponse
	require.NoError(t, json.Unmarshal(env.Data, &created))

	rec, _ := do(t, r, http.MethodDelete, "/product-inquiries/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, r, http.MethodDelete, "/product-inquiries/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBulkUpdateSkipsUnknownIDs(t *testing.T) {
	r, repo := newRouter(t, ProductKind, nil, allowAll{})

	ids := make([]string, 0, 3)
	for i := 0; i < 2; i++ {
		_, env := do(t, r, http.MethodPost, "/product-inquiries/submit", productSubmission())
		var created SubmitResponse
		require.NoError(t, json.Unmarshal(env.Data, &created))
		ids = append(ids, created.ID)
	}
	ids = append(ids, primitive.NewObjectID().Hex(), "garbage")

	rec, env := do(t, r, http.MethodPatch, "/product-inquiries/bulk-update", map[string]any{
		"ids":    ids,
		"status": "completed",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp BulkUpdateResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, int64(2), resp.ModifiedCount)

	for _, inq := range repo.all() {
		assert.Equal(t, StatusCompleted, inq.Status)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	r, _ := newRouter(t, ProductKind, nil, allowAll{})

	rec, env := do(t, r, http.MethodPatch, "/product-inquiries/"+primitive.NewObjectID().Hex()+"/status",
		map[string]any{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "status", env.Errors[0].Field)
}

func TestListIsPaginated(t *testing.T) {
	r, repo := newRouter(t, ProductKind, nil, allowAll{})

	rec, env := do(t, r, http.MethodGet, "/product-inquiries?page=2&limit=500&status=pending&search=mirror", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		Items      []Inquiry `json:"items"`
		Total      int64     `json:"total"`
		Page       int       `json:"page"`
		Limit      int       `json:"limit"`
		TotalPages int       `json:"totalPages"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 100, page.Limit)
	assert.NotNil(t, page.Items)

	assert.Equal(t, "pending", repo.lastQuery.Filter["status"])
	assert.Contains(t, repo.lastQuery.Filter, "$or")
}

func TestExportCSV(t *testing.T) {
	r, _ := newRouter(t, ProductKind, nil, allowAll{})

	body := productSubmission()
	body["message"] = "first line, with comma\nsecond line"
	do(t, r, http.MethodPost, "/product-inquiries/submit", body)

	rec, _ := do(t, r, http.MethodGet, "/product-inquiries/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), `filename="product-inquiries-`)

	records, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{
		"Name", "Email", "Phone", "Company", "Product Name", "Product Code",
		"Category", "Subcategory", "Quantity", "Message", "Status", "Admin Notes", "Created At",
	}, records[0])
	assert.Equal(t, "first line, with comma\nsecond line", records[1][9])
	assert.Equal(t, "5", records[1][8])
}

func TestNormalExportColumns(t *testing.T) {
	assert.Len(t, NormalKind.Columns, 9)
	assert.Equal(t, "Subject", NormalKind.Columns[4].Header)
}
