// Package web holds the static assets bundled into the binary.
package web

import (
	"embed"
	"io/fs"
)

//go:embed public
var embedded embed.FS

// FS is the public/ directory, rooted so that public/usuarios.html is served
// as /usuarios.html.
var FS = mustSub(embedded, "public")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
