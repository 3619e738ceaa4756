package site

import (
	"embed"
	"io/fs"
)

//go:embed static/css/*.css static/js/*.js
var staticFS embed.FS

// StaticFS returns the embedded assets rooted at static/, ready for
// http.FileServer under /static/.
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
