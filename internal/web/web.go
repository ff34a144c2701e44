// Package web embeds the admin dashboard.
package web

import (
	"embed"
	"io/fs"
)

//go:embed admin
var files embed.FS

// Admin returns the dashboard files rooted at the admin directory.
func Admin() fs.FS {
	sub, err := fs.Sub(files, "admin")
	if err != nil {
		panic(err)
	}
	return sub
}
