package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/recipebox-dev/recipebox/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttributeStore struct {
	listOwner    uint
	listAssigned bool
	listResult   []store.Attribute
	listErr      error

	updateOwner uint
	updateID    uint
	updateName  string
	updateErr   error

	deleteOwner uint
	deleteID    uint
	deleteErr   error
}

func (f *fakeAttributeStore) GetOrCreate(ctx context.Context, ownerID uint, name string) (store.Attribute, bool, error) {
	return store.Attribute{ID: 1, Name: name}, true, nil
}

func (f *fakeAttributeStore) List(ctx context.Context, ownerID uint, assignedOnly bool) ([]store.Attribute, error) {
	f.listOwner = ownerID
	f.listAssigned = assignedOnly
	return f.listResult, f.listErr
}

func (f *fakeAttributeStore) Update(ctx context.Context, ownerID, id uint, name string) (store.Attribute, error) {
	f.updateOwner = ownerID
	f.updateID = id
	f.updateName = name

	if f.updateErr != nil {
		return store.Attribute{}, f.updateErr
	}

	return store.Attribute{ID: id, Name: name}, nil
}

func (f *fakeAttributeStore) Delete(ctx context.Context, ownerID, id uint) error {
	f.deleteOwner = ownerID
	f.deleteID = id
	return f.deleteErr
}

func newAttributeTestEngine(attrs store.AttributeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewTagHandler(attrs)

	r := gin.New()
	authed := r.Group("/api/tags", asUser(7, "Ada", "ada@example.com"))
	authed.GET("", h.List)
	authed.PATCH("/:id", h.Update)
	authed.DELETE("/:id", h.Delete)

	return r
}

func TestListAttributesScopesToOwner(t *testing.T) {
	attrs := &fakeAttributeStore{
		listResult: []store.Attribute{{ID: 2, Name: "Vegan"}, {ID: 1, Name: "Dessert"}},
	}
	r := newAttributeTestEngine(attrs)

	req := httptest.NewRequest(http.MethodGet, "/api/tags", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(7), attrs.listOwner)
	assert.False(t, attrs.listAssigned)
	assert.JSONEq(t, `[{"id":2,"name":"Vegan"},{"id":1,"name":"Dessert"}]`, w.Body.String())
}

func TestListAttributesAssignedOnly(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		expectedCode int
		assigned     bool
	}{
		{name: "absent", query: "", expectedCode: http.StatusOK, assigned: false},
		{name: "zero", query: "?assigned_only=0", expectedCode: http.StatusOK, assigned: false},
		{name: "one", query: "?assigned_only=1", expectedCode: http.StatusOK, assigned: true},
		{name: "not an integer", query: "?assigned_only=true", expectedCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := &fakeAttributeStore{}
			r := newAttributeTestEngine(attrs)

			req := httptest.NewRequest(http.MethodGet, "/api/tags"+tt.query, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)

			if tt.expectedCode == http.StatusOK {
				assert.Equal(t, tt.assigned, attrs.listAssigned)
			}
		})
	}
}

func TestListAttributesEmptyIsJSONArray(t *testing.T) {
	attrs := &fakeAttributeStore{}
	r := newAttributeTestEngine(attrs)

	req := httptest.NewRequest(http.MethodGet, "/api/tags", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestUpdateAttribute(t *testing.T) {
	attrs := &fakeAttributeStore{}
	r := newAttributeTestEngine(attrs)

	w := doJSON(t, r, http.MethodPatch, "/api/tags/4", `{"name":"Dinner"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(7), attrs.updateOwner)
	assert.Equal(t, uint(4), attrs.updateID)
	assert.Equal(t, "Dinner", attrs.updateName)
}

func TestUpdateAttributeRequiresName(t *testing.T) {
	attrs := &fakeAttributeStore{}
	r := newAttributeTestEngine(attrs)

	w := doJSON(t, r, http.MethodPatch, "/api/tags/4", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, attrs.updateID)
}

func TestUpdateAttributeNotOwned(t *testing.T) {
	attrs := &fakeAttributeStore{updateErr: store.ErrNotFound}
	r := newAttributeTestEngine(attrs)

	w := doJSON(t, r, http.MethodPatch, "/api/tags/4", `{"name":"Dinner"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteAttribute(t *testing.T) {
	attrs := &fakeAttributeStore{}
	r := newAttributeTestEngine(attrs)

	req := httptest.NewRequest(http.MethodDelete, "/api/tags/6", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, uint(7), attrs.deleteOwner)
	assert.Equal(t, uint(6), attrs.deleteID)
}

func TestDeleteAttributeNotOwned(t *testing.T) {
	attrs := &fakeAttributeStore{deleteErr: store.ErrNotFound}
	r := newAttributeTestEngine(attrs)

	req := httptest.NewRequest(http.MethodDelete, "/api/tags/6", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
