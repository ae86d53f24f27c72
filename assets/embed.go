// Package assets embeds the HTML templates and static files served by the
// game's web front end.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html static/*
var FS embed.FS

// Templates returns the template directory as its own filesystem.
func Templates() fs.FS {
	sub, err := fs.Sub(FS, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// Static returns the static file directory as its own filesystem.
func Static() fs.FS {
	sub, err := fs.Sub(FS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
