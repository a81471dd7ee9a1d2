package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appcatalog "github.com/sweetshop/backend/internal/application/catalog"
	"github.com/sweetshop/backend/internal/domain/catalog"
	"github.com/sweetshop/backend/internal/domain/shared"
	"github.com/sweetshop/backend/internal/interfaces/http/dto"
	"github.com/sweetshop/backend/internal/interfaces/http/middleware"
)

type fakeSweetRepo struct {
	sweets map[uuid.UUID]*catalog.Sweet
}

func newFakeSweetRepo() *fakeSweetRepo {
	return &fakeSweetRepo{sweets: make(map[uuid.UUID]*catalog.Sweet)}
}

func (r *fakeSweetRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Sweet, error) {
	if s, ok := r.sweets[id]; ok {
		return s, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeSweetRepo) FindAll(_ context.Context) ([]catalog.Sweet, error) {
	out := make([]catalog.Sweet, 0, len(r.sweets))
	for _, s := range r.sweets {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeSweetRepo) Search(_ context.Context, filter catalog.SearchFilter) ([]catalog.Sweet, error) {
	all, _ := r.FindAll(context.Background())
	var out []catalog.Sweet
	for _, s := range all {
		if filter.Name != "" && !strings.Contains(strings.ToLower(s.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.Category != "" && !strings.Contains(strings.ToLower(s.Category), strings.ToLower(filter.Category)) {
			continue
		}
		if filter.MinPrice != nil && s.Price.LessThan(*filter.MinPrice) {
			continue
		}
		if filter.MaxPrice != nil && s.Price.GreaterThan(*filter.MaxPrice) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeSweetRepo) Save(_ context.Context, sweet *catalog.Sweet) error {
	r.sweets[sweet.ID] = sweet
	return nil
}

func (r *fakeSweetRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.sweets[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.sweets, id)
	return nil
}

func setupSweetTest(t *testing.T, role string) (*gin.Engine, *fakeSweetRepo) {
	t.Helper()

	repo := newFakeSweetRepo()
	service := appcatalog.NewSweetService(repo, zap.NewNop())
	handler := NewSweetHandler(service, stubAuthn(uuid.New(), role), middleware.RequireAdmin())

	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return router, repo
}

func (r *fakeSweetRepo) add(t *testing.T, name, category, price string, quantity int64) *catalog.Sweet {
	t.Helper()
	sweet, err := catalog.NewSweet(name, category, decimal.RequireFromString(price), quantity)
	require.NoError(t, err)
	r.sweets[sweet.ID] = sweet
	return sweet
}

func TestSweetHandlerList(t *testing.T) {
	router, repo := setupSweetTest(t, "USER")
	repo.add(t, "Truffle", "chocolate", "3.50", 10)
	repo.add(t, "Fudge", "chocolate", "2.00", 5)

	req := httptest.NewRequest("GET", "/api/v1/sweets", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	items := resp.Data.([]any)
	require.Len(t, items, 2)

	// ordered by name
	assert.Equal(t, "Fudge", items[0].(map[string]any)["name"])
}

func TestSweetHandlerGetByID(t *testing.T) {
	router, repo := setupSweetTest(t, "USER")
	sweet := repo.add(t, "Gulab Jamun", "indian", "4.25", 8)

	req := httptest.NewRequest("GET", "/api/v1/sweets/"+sweet.ID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]any)
	assert.Equal(t, "Gulab Jamun", data["name"])
	assert.Equal(t, "4.25", data["price"])
}

func TestSweetHandlerGetByIDNotFound(t *testing.T) {
	router, _ := setupSweetTest(t, "USER")

	req := httptest.NewRequest("GET", "/api/v1/sweets/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSweetHandlerSearch(t *testing.T) {
	router, repo := setupSweetTest(t, "USER")
	repo.add(t, "Dark Truffle", "chocolate", "3.50", 10)
	repo.add(t, "Lemon Drop", "hard candy", "1.00", 20)

	req := httptest.NewRequest("GET", "/api/v1/sweets/search?name=truffle", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	items := resp.Data.([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "Dark Truffle", items[0].(map[string]any)["name"])
}

func TestSweetHandlerSearchPriceRange(t *testing.T) {
	router, repo := setupSweetTest(t, "USER")
	repo.add(t, "Cheap Mint", "mint", "0.50", 50)
	repo.add(t, "Fancy Praline", "chocolate", "6.00", 5)

	req := httptest.NewRequest("GET", "/api/v1/sweets/search?min_price=1&max_price=10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	items := resp.Data.([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "Fancy Praline", items[0].(map[string]any)["name"])
}

func TestSweetHandlerSearchInvalidPrice(t *testing.T) {
	router, _ := setupSweetTest(t, "USER")

	req := httptest.NewRequest("GET", "/api/v1/sweets/search?min_price=abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSweetHandlerCreateAsAdmin(t *testing.T) {
	router, repo := setupSweetTest(t, "ADMIN")

	w := doJSON(t, router, "POST", "/api/v1/sweets", map[string]any{
		"name":     "Caramel Cube",
		"category": "caramel",
		"price":    "2.75",
		"quantity": 12,
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, repo.sweets, 1)
}

func TestSweetHandlerCreateForbiddenForUser(t *testing.T) {
	router, repo := setupSweetTest(t, "USER")

	w := doJSON(t, router, "POST", "/api/v1/sweets", map[string]any{
		"name":     "Caramel Cube",
		"category": "caramel",
		"price":    "2.75",
		"quantity": 12,
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, repo.sweets)
}

func TestSweetHandlerUpdateAsAdmin(t *testing.T) {
	router, repo := setupSweetTest(t, "ADMIN")
	sweet := repo.add(t, "Old Name", "chocolate", "1.00", 3)

	w := doJSON(t, router, "PUT", "/api/v1/sweets/"+sweet.ID.String(), map[string]any{
		"name":     "New Name",
		"category": "chocolate",
		"price":    "1.50",
		"quantity": 3,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "New Name", repo.sweets[sweet.ID].Name)
	assert.True(t, repo.sweets[sweet.ID].Price.Equal(decimal.RequireFromString("1.50")))
}

func TestSweetHandlerDeleteAsAdmin(t *testing.T) {
	router, repo := setupSweetTest(t, "ADMIN")
	sweet := repo.add(t, "Doomed Drop", "hard candy", "1.00", 3)

	req := httptest.NewRequest("DELETE", "/api/v1/sweets/"+sweet.ID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, repo.sweets)
}

func TestSweetHandlerDeleteNotFound(t *testing.T) {
	router, _ := setupSweetTest(t, "ADMIN")

	req := httptest.NewRequest("DELETE", "/api/v1/sweets/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
