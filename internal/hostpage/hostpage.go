// Package hostpage serves the development host page that drives the bridge
// over HTTP and listens for events on the WebSocket.
package hostpage

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var staticFiles embed.FS

func FS() fs.FS {
	sub, _ := fs.Sub(staticFiles, "static")
	return sub
}

func Handler() http.Handler {
	return http.FileServer(http.FS(FS()))
}
