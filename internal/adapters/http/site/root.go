// Package site serves the embedded matchmaking page.
package site

import (
	"context"
	"net/http"
)

// Register attaches the page at / to mux. Paths not found in the
// embedded files answer 404.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("/", http.FileServer(FS()))
}
