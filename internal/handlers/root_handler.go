package handlers

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Hello(w http.ResponseWriter, r *http.Request) {
	writeText(w, r, http.StatusOK, "Hello World from express")
}

// FileServer serves fsys under route, e.g. "/" serves every path not matched
// by another route.
func FileServer(r chi.Router, route string, fsys fs.FS) {
	if route == "" || route[len(route)-1] != '/' {
		route += "/"
	}
	r.Handle(route+"*", http.StripPrefix(route, http.FileServer(http.FS(fsys))))
}
