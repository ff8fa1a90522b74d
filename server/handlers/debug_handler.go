package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/davecgh/go-spew/spew"

	services "bus-arrival-server/service"
)

//go:embed templates/debug_session.html
var templateFS embed.FS

var debugTemplate = template.Must(template.ParseFS(templateFS, "templates/debug_session.html"))

type debugData struct {
	Title string
	Pre   string
}

type DebugHandler struct {
	arrivalService *services.ArrivalService
	page           *template.Template
}

func NewDebugHandler(arrivalService *services.ArrivalService) *DebugHandler {
	return &DebugHandler{arrivalService: arrivalService, page: debugTemplate}
}

// GetSession handles GET /debug/session and dumps the caller's session state.
func (h *DebugHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id := sessionID(w, r)
	s, err := h.arrivalService.GetSession(r.Context(), id)
	if err != nil {
		internalError(w, r, "failed to load session", err)
		return
	}

	var buf bytes.Buffer
	if err := h.page.Execute(&buf, debugData{Title: "Session " + id, Pre: spew.Sdump(s)}); err != nil {
		internalError(w, r, "failed to render debug page", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
