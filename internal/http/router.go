package http

import (
	nethttp "net/http"

	"github.com/preston-bernstein/pyramid-service/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux.
func NewRouter(handler *handlers.Handler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/themes", handler.Themes)
	mux.HandleFunc("/themes/", handler.ThemeByKey)
	mux.HandleFunc("/pyramids", handler.Pyramids)
	mux.HandleFunc("/pyramids/", handler.PyramidByID)
	return mux
}
