package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/rs/zerolog"

	"github.com/slizer98/api-rest-go/internal/app"
	"github.com/slizer98/api-rest-go/internal/database"
	"github.com/slizer98/api-rest-go/internal/models"
	"github.com/slizer98/api-rest-go/internal/validation"
)

var errBadBody = errors.New("cuerpo de la petición inválido")

type UserHandler struct {
	app *app.App
	log zerolog.Logger
}

func NewUserHandler(app *app.App, log zerolog.Logger) *UserHandler {
	return &UserHandler{app: app, log: log}
}

// Routes registers the /api/usuarios routes on r.
func (h *UserHandler) Routes(r chi.Router) {
	r.Get("/", h.ListUsers)
	r.Post("/", h.CreateUser)
	r.Get("/{id}", h.GetUser)
	r.Put("/{id}", h.UpdateUser)
	r.Delete("/{id}", h.DeleteUser)
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.app.Users.List(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, users)
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeText(w, r, http.StatusOK, "Usuario encontrado: "+user.Nombre)
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeValid(w, r)
	if !ok {
		return
	}

	user, err := h.app.Users.Create(r.Context(), req.Name())
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	h.log.Debug().Int64("id", user.ID).Msg("usuario created")
	writeJSON(w, r, http.StatusOK, user)
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	user, ok := h.lookup(w, r)
	if !ok {
		return
	}
	req, ok := h.decodeValid(w, r)
	if !ok {
		return
	}

	user, err := h.app.Users.UpdateName(r.Context(), user.ID, req.Name())
	if errors.Is(err, database.ErrNotFound) {
		// Deleted between the lookup and the update.
		writeText(w, r, http.StatusNotFound, msgNotFound)
		return
	}
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, user)
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeText(w, r, http.StatusNotFound, msgNotFound)
		return
	}

	user, err := h.app.Users.Delete(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		writeText(w, r, http.StatusNotFound, msgNotFound)
		return
	}
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	h.log.Debug().Int64("id", user.ID).Msg("usuario deleted")
	writeJSON(w, r, http.StatusOK, user)
}

// lookup resolves the {id} path parameter. On a miss it writes the 404 and
// returns false.
func (h *UserHandler) lookup(w http.ResponseWriter, r *http.Request) (*database.User, bool) {
	id, err := parseID(r)
	if err != nil {
		writeText(w, r, http.StatusNotFound, msgNotFound)
		return nil, false
	}

	user, err := h.app.Users.GetByID(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		writeText(w, r, http.StatusNotFound, msgNotFound)
		return nil, false
	}
	if err != nil {
		h.internalError(w, r, err)
		return nil, false
	}
	return user, true
}

// decodeValid reads and validates the request body. On failure it writes the
// 400 with the first validation message and returns false.
func (h *UserHandler) decodeValid(w http.ResponseWriter, r *http.Request) (models.UserRequest, bool) {
	req, err := decodeUserRequest(r)
	if err == nil {
		res := validation.ValidateUser(req)
		req, err = res.Value, res.Err()
	}
	if err != nil {
		writeText(w, r, http.StatusBadRequest, err.Error())
		return models.UserRequest{}, false
	}
	return req, true
}

func (h *UserHandler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("store error")
	writeText(w, r, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

// parseID reads the {id} path parameter the way a numeric path segment is
// read by the public API: decimal or 0x/0o/0b integers and decimals, with
// fractions truncated toward zero, so "3.5" and "0x3" both address id 3.
func parseID(r *http.Request) (int64, error) {
	idStr := strings.TrimSpace(chi.URLParam(r, "id"))

	f, err := strconv.ParseFloat(idStr, 64)
	if err != nil && hasIntPrefix(idStr) {
		var n int64
		if n, err = strconv.ParseInt(idStr, 0, 64); err == nil {
			f = float64(n)
		}
	}
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", idStr, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) >= math.MaxInt64 {
		return 0, fmt.Errorf("invalid id %q: out of range", idStr)
	}
	return int64(math.Trunc(f)), nil
}

// hasIntPrefix reports an unsigned 0x, 0o or 0b literal without separators.
func hasIntPrefix(s string) bool {
	if len(s) < 3 || s[0] != '0' || strings.Contains(s, "_") {
		return false
	}
	switch s[1] {
	case 'x', 'X', 'o', 'O', 'b', 'B':
		return true
	}
	return false
}

// decodeUserRequest reads JSON and urlencoded form bodies. Any other body
// is ignored and decodes to the empty request, so validation reports the
// missing field.
func decodeUserRequest(r *http.Request) (models.UserRequest, error) {
	var req models.UserRequest

	switch render.GetRequestContentType(r) {
	case render.ContentTypeForm:
		if err := r.ParseForm(); err != nil {
			return req, errBadBody
		}
		if v, ok := r.PostForm["nombre"]; ok && len(v) > 0 {
			req.Nombre = &v[0]
		}
		return req, nil
	case render.ContentTypeJSON:
	default:
		return req, nil
	}

	var body struct {
		Nombre json.RawMessage `json:"nombre"`
	}
	err := render.DecodeJSON(r.Body, &body)
	switch {
	case errors.Is(err, io.EOF):
		return req, nil
	case err != nil:
		return req, errBadBody
	case body.Nombre == nil:
		return req, nil
	}

	var nombre *string
	if err := json.Unmarshal(body.Nombre, &nombre); err != nil || nombre == nil {
		return req, validation.TypeError("nombre")
	}
	req.Nombre = nombre
	return req, nil
}
