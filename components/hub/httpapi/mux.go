package httpapi

import (
	"net/http"
	"strings"
)

// Register mounts the handlers on mux under base using method patterns.
func (h *Handlers) Register(mux *http.ServeMux, base string) {
	base = "/" + strings.Trim(base, "/")
	if base == "/" {
		base = ""
	}
	withID := func(fn func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			fn(w, r, r.PathValue("id"))
		}
	}
	mux.HandleFunc("GET "+base+"/widgets", h.HandleListWidgets)
	mux.HandleFunc("POST "+base+"/widgets", h.HandleCreateWidget)
	mux.HandleFunc("POST "+base+"/widgets/import", h.HandleImportProject)
	mux.HandleFunc("GET "+base+"/widgets/{id}", withID(h.HandleGetWidget))
	mux.HandleFunc("PUT "+base+"/widgets/{id}", withID(h.HandleUpdateWidget))
	mux.HandleFunc("DELETE "+base+"/widgets/{id}", withID(h.HandleDeleteWidget))
	mux.HandleFunc("PATCH "+base+"/widgets/{id}/channels/{type}", func(w http.ResponseWriter, r *http.Request) {
		h.HandleUpdateChannel(w, r, r.PathValue("id"), r.PathValue("type"))
	})
	mux.HandleFunc("GET "+base+"/widgets/{id}/style", withID(h.HandleStyle))
	mux.HandleFunc("GET "+base+"/widgets/{id}/script.js", withID(h.HandleScript))
	mux.HandleFunc("GET "+base+"/widgets/{id}/demo", withID(h.HandleDemo))
	mux.HandleFunc("GET "+base+"/widgets/{id}/export", withID(h.HandleExportProject))
	mux.HandleFunc("POST "+base+"/widgets/{id}/submit", withID(h.HandleSubmit))
}
