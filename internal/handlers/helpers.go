package handlers

import (
	"net/http"

	"github.com/go-chi/render"
)

const msgNotFound = "Usuario no encontrado"

// writeText writes a plain-text body with the given status.
func writeText(w http.ResponseWriter, r *http.Request, status int, text string) {
	render.Status(r, status)
	render.PlainText(w, r, text)
}

// writeJSON serialises v as JSON with the given status.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}
