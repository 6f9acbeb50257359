package app

import (
	"log"
	"mime"
)

// The dashboard bundle ships stylesheets, icons and fonts; some minimal
// container images lack /etc/mime.types, so register what the bundle needs.
func init() {
	ensureMimeType(".css", "text/css; charset=utf-8")
	ensureMimeType(".svg", "image/svg+xml")
	ensureMimeType(".woff2", "font/woff2")
}

func ensureMimeType(ext, typ string) {
	if mime.TypeByExtension(ext) != "" {
		return
	}
	if err := mime.AddExtensionType(ext, typ); err != nil {
		log.Printf("app: failed to register MIME type for %s: %v", ext, err)
	}
}
