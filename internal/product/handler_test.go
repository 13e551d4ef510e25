// AngelaMos | 2026
// handler_test.go

package product

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/keyurm111/eloska-luxe-showcase/internal/middleware"
)

// tokenVerifier accepts only the token "admin".
type tokenVerifier struct{}

func (tokenVerifier) VerifyAccessToken(_ context.Context, token string) (*middleware.AccessTokenClaims, error) {
	if token != "admin" {
		return nil, assert.AnError
	}
	return &middleware.AccessTokenClaims{AdminID: primitive.NewObjectID().Hex(), Role: "admin"}, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setup() (chi.Router, *fakeRepo) {
	repo := newFakeRepo()
	r := chi.NewRouter()
	NewHandler(NewService(repo)).RegisterRoutes(
		r,
		middleware.Authenticator(tokenVerifier{}),
		middleware.OptionalAuth(tokenVerifier{}),
	)
	return r, repo
}

func do(t *testing.T, r http.Handler, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func mirror(status string) map[string]any {
	return map[string]any{
		"name":          "Gilded Oval Mirror",
		"description":   "Hand-finished brass frame",
		"price":         1234,
		"originalPrice": 1500,
		"collection":    "Mirror Collection",
		"category":      "Wall Mirrors",
		"images":        []string{"https://cdn.eloska.com/mirror.jpg"},
		"status":        status,
		"tags":          []string{"Brass", "brass", "oval"},
	}
}

func TestCreateRequiresAdmin(t *testing.T) {
	r, _ := setup()

	rec, env := do(t, r, http.MethodPost, "/products", "", mirror("active"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Not authorized", env.Message)
}

func TestCreateAndReadDerivedFields(t *testing.T) {
	r, _ := setup()

	rec, env := do(t, r, http.MethodPost, "/products", "admin", mirror("active"))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "₹1,234.00", created["formattedPrice"])
	assert.Equal(t, float64(18), created["discountPercentage"])
	assert.Equal(t, []any{"brass", "oval"}, created["tags"])

	id, ok := created["id"].(string)
	require.True(t, ok)

	rec, env = do(t, r, http.MethodGet, "/products/"+id, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "Gilded Oval Mirror", got["name"])
}

func TestCreateValidation(t *testing.T) {
	r, _ := setup()

	body := mirror("active")
	body["collection"] = "Lamps"
	body["images"] = []string{}
	delete(body, "price")

	rec, _ := do(t, r, http.MethodPost, "/products", "admin", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDraftHiddenFromAnonymous(t *testing.T) {
	r, repo := setup()

	_, env := do(t, r, http.MethodPost, "/products", "admin", mirror("draft"))
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	rec, _ := do(t, r, http.MethodGet, "/products/"+created.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, r, http.MethodGet, "/products/"+created.ID, "admin", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env = do(t, r, http.MethodGet, "/products?status=draft", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, StatusActive, repo.lastQuery.Filter["status"])

	var page struct {
		Items []map[string]any `json:"items"`
		Limit int              `json:"limit"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Empty(t, page.Items)
	assert.Equal(t, 12, page.Limit)
}

func TestInvalidTokenOnPublicReadIsAnonymous(t *testing.T) {
	r, repo := setup()

	rec, _ := do(t, r, http.MethodGet, "/products?status=draft", "forged", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, StatusActive, repo.lastQuery.Filter["status"])
}

func TestUpdateStatusAndDelete(t *testing.T) {
	r, _ := setup()

	_, env := do(t, r, http.MethodPost, "/products", "admin", mirror("active"))
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	rec, _ := do(t, r, http.MethodPatch, "/products/"+created.ID+"/status", "admin", map[string]any{"status": "inactive"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, r, http.MethodGet, "/products/"+created.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, r, http.MethodPut, "/products/"+created.ID, "admin", map[string]any{"price": -1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, r, http.MethodDelete, "/products/"+created.ID, "admin", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, r, http.MethodDelete, "/products/"+created.ID, "admin", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
