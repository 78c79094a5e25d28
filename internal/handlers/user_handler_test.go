package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slizer98/api-rest-go/internal/app"
	"github.com/slizer98/api-rest-go/internal/database"
)

func newTestRouter(t *testing.T) (http.Handler, *database.MemoryUserStore) {
	t.Helper()
	store := database.NewMemoryUserStore(database.SeedUsers())
	h := NewUserHandler(&app.App{Users: store}, zerolog.Nop())

	r := chi.NewRouter()
	r.Route("/api/usuarios", h.Routes)
	return r, store
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeUser(t *testing.T, rec *httptest.ResponseRecorder) database.User {
	t.Helper()
	var u database.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &u))
	return u
}

func count(t *testing.T, s database.UserStore) int {
	t.Helper()
	n, err := s.Count(context.Background())
	require.NoError(t, err)
	return n
}

func TestListUsers(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/usuarios", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var users []database.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	assert.Equal(t, database.SeedUsers(), users)
}

func TestGetUser(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/usuarios/3", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Usuario encontrado: Pedro", rec.Body.String())
}

func TestUnknownIDsAreNotFound(t *testing.T) {
	h, store := newTestRouter(t)

	for _, id := range []string{"99", "0", "-1", "abc", "NaN", "Infinity", "1e999", "-0x3", "0x", "3_0"} {
		for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
			rec := do(t, h, method, "/api/usuarios/"+id, `{"nombre":"Valido"}`)
			assert.Equal(t, http.StatusNotFound, rec.Code, "%s %s", method, id)
			assert.Equal(t, "Usuario no encontrado", rec.Body.String(), "%s %s", method, id)
		}
	}
	assert.Equal(t, 5, count(t, store))
}

func TestNumericIDFormsTruncateToRecord(t *testing.T) {
	h, _ := newTestRouter(t)

	for _, id := range []string{"3.5", "3.0", "3.99", "0x3", "0X3", "0o3", "0b11", "3e0", "03"} {
		rec := do(t, h, http.MethodGet, "/api/usuarios/"+id, "")
		assert.Equal(t, http.StatusOK, rec.Code, id)
		assert.Equal(t, "Usuario encontrado: Pedro", rec.Body.String(), id)
	}
}

func TestUpdateAndDeleteTruncateFractionalIDs(t *testing.T) {
	h, store := newTestRouter(t)

	rec := do(t, h, http.MethodPut, "/api/usuarios/2.7", `{"nombre":"Juana"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, database.User{ID: 2, Nombre: "Juana"}, decodeUser(t, rec))

	rec = do(t, h, http.MethodDelete, "/api/usuarios/4.9", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, database.User{ID: 4, Nombre: "Carlos"}, decodeUser(t, rec))
	assert.Equal(t, 4, count(t, store))
}

func TestCreateUser(t *testing.T) {
	h, store := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/usuarios", `{"nombre":"Ana"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, database.User{ID: 6, Nombre: "Ana"}, decodeUser(t, rec))
	assert.Equal(t, 6, count(t, store))

	rec = do(t, h, http.MethodPost, "/api/usuarios", `{"nombre":"Beatriz"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), decodeUser(t, rec).ID)
}

func TestCreateUser_Form(t *testing.T) {
	h, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/usuarios", strings.NewReader(url.Values{"nombre": {"Rosa"}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, database.User{ID: 6, Nombre: "Rosa"}, decodeUser(t, rec))
}

func TestCreateUser_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "too short", body: `{"nombre":"Al"}`, want: `"nombre" length must be at least 3 characters long`},
		{name: "empty name", body: `{"nombre":""}`, want: `"nombre" is not allowed to be empty`},
		{name: "null name", body: `{"nombre":null}`, want: `"nombre" must be a string`},
		{name: "object name", body: `{"nombre":{"x":1}}`, want: `"nombre" must be a string`},
		{name: "missing name", body: `{}`, want: `"nombre" is required`},
		{name: "empty body", body: "", want: `"nombre" is required`},
		{name: "wrong type", body: `{"nombre":123}`, want: `"nombre" must be a string`},
		{name: "malformed", body: `{"nombre":`, want: errBadBody.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, store := newTestRouter(t)

			rec := do(t, h, http.MethodPost, "/api/usuarios", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.want, rec.Body.String())
			assert.Equal(t, 5, count(t, store))
		})
	}
}

func TestCreateUser_IgnoresNonJSONBody(t *testing.T) {
	h, store := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/usuarios", strings.NewReader(`{"nombre":"Ana"}`))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, `"nombre" is required`, rec.Body.String())
	assert.Equal(t, 5, count(t, store))
}

func TestCreateUser_FormEmptyName(t *testing.T) {
	h, store := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/usuarios", strings.NewReader("nombre="))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, `"nombre" is not allowed to be empty`, rec.Body.String())
	assert.Equal(t, 5, count(t, store))
}

func TestUpdateUser(t *testing.T) {
	h, store := newTestRouter(t)

	rec := do(t, h, http.MethodPut, "/api/usuarios/2", `{"nombre":"Juana"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, database.User{ID: 2, Nombre: "Juana"}, decodeUser(t, rec))

	u, ok := store.FindByID(2)
	require.True(t, ok)
	assert.Equal(t, "Juana", u.Nombre)
}

func TestUpdateUser_InvalidLeavesRecordUntouched(t *testing.T) {
	h, store := newTestRouter(t)

	rec := do(t, h, http.MethodPut, "/api/usuarios/2", `{"nombre":"J"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, `"nombre" length must be at least 3 characters long`, rec.Body.String())

	u, ok := store.FindByID(2)
	require.True(t, ok)
	assert.Equal(t, "Juan", u.Nombre)
}

func TestUpdateUser_NotFoundWinsOverInvalidBody(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodPut, "/api/usuarios/99", `{"nombre":"J"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Usuario no encontrado", rec.Body.String())
}

func TestDeleteUser(t *testing.T) {
	h, store := newTestRouter(t)

	rec := do(t, h, http.MethodDelete, "/api/usuarios/4", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, database.User{ID: 4, Nombre: "Carlos"}, decodeUser(t, rec))
	assert.Equal(t, 4, count(t, store))

	_, ok := store.FindByID(4)
	assert.False(t, ok)

	rec = do(t, h, http.MethodDelete, "/api/usuarios/4", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 4, count(t, store))
}

type failingStore struct {
	database.UserStore
}

func (failingStore) List(context.Context) ([]database.User, error) {
	return nil, errors.New("boom")
}

func (failingStore) GetByID(context.Context, int64) (*database.User, error) {
	return nil, errors.New("boom")
}

func TestStoreErrorsAreInternal(t *testing.T) {
	h := NewUserHandler(&app.App{Users: failingStore{}}, zerolog.Nop())
	r := chi.NewRouter()
	r.Route("/api/usuarios", h.Routes)

	rec := do(t, r, http.MethodGet, "/api/usuarios", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = do(t, r, http.MethodGet, "/api/usuarios/1", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
