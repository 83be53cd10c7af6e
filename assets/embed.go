// assets/embed.go
//
// Static files for the browser page, compiled into the binary.

package assets

import (
	"embed"
	"io/fs"
)

//go:embed web
var files embed.FS

// Web returns the browser page files rooted at web/ (index.html, app.js, style.css).
func Web() fs.FS {
	sub, err := fs.Sub(files, "web")
	if err != nil {
		// "web" is embedded above; fs.Sub only fails on an invalid path.
		panic(err)
	}
	return sub
}

// Index returns the page served at "/".
func Index() ([]byte, error) {
	return fs.ReadFile(Web(), "index.html")
}
