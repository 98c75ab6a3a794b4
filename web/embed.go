// Package web holds the embedded front-end bundle and page templates.
package web

import (
	"embed"
	"io/fs"
	"os"
)

//go:embed templates static
var files embed.FS

// Templates returns the page templates.
func Templates() fs.FS {
	sub, err := fs.Sub(files, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// Static returns the static asset tree. A non-empty dir overrides the
// embedded bundle with files from disk.
func Static(dir string) fs.FS {
	if dir != "" {
		return os.DirFS(dir)
	}
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
