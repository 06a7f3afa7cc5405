package admin

import (
	"embed"
	"io/fs"
)

//go:embed static/*.css static/*.js
var staticFS embed.FS

func staticAssets() fs.FS {
	assets, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return assets
}
