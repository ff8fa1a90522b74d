package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"

	"bus-arrival-server/logging"
	"bus-arrival-server/models"
	"bus-arrival-server/render"
	services "bus-arrival-server/service"
	"bus-arrival-server/util"
)

const (
	STOP_ID_FORM_ARG      = "stop_id"
	FILTER_KIND_FORM_ARG  = "kind"
	FILTER_QUERY_FORM_ARG = "query"

	STOP_ID_QUERY_ARG      = "id"
	FILTER_KIND_QUERY_ARG  = "filter"
	FILTER_QUERY_QUERY_ARG = "q"
)

// ArrivalsResponse is the body of GET /v1/arrivals.
type ArrivalsResponse struct {
	StopID       string                     `json:"stop_id"`
	Warning      string                     `json:"warning,omitempty"`
	Info         string                     `json:"info,omitempty"`
	Filter       models.FilterSpec          `json:"filter"`
	Rows         []models.DisplayRow        `json:"rows"`
	Instructions []render.RenderInstruction `json:"instructions"`
}

type ArrivalHandler struct {
	arrivalService *services.ArrivalService
}

func NewArrivalHandler(arrivalService *services.ArrivalService) *ArrivalHandler {
	return &ArrivalHandler{arrivalService: arrivalService}
}

// GetBoard handles GET /
func (h *ArrivalHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	s, err := h.arrivalService.GetSession(r.Context(), sessionID(w, r))
	if err != nil {
		internalError(w, r, "failed to load session", err)
		return
	}

	var buf bytes.Buffer
	if err := render.WriteBoard(&buf, render.NewBoardView(s)); err != nil {
		internalError(w, r, "failed to render board", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// SubmitQuery handles POST /arrivals
func (h *ArrivalHandler) SubmitQuery(w http.ResponseWriter, r *http.Request) {
	id := sessionID(w, r)
	if _, err := h.arrivalService.SubmitQuery(r.Context(), id, r.PostFormValue(STOP_ID_FORM_ARG)); err != nil {
		internalError(w, r, "failed to submit query", err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// SetFilter handles POST /filter
func (h *ArrivalHandler) SetFilter(w http.ResponseWriter, r *http.Request) {
	kind := r.PostFormValue(FILTER_KIND_FORM_ARG)
	if _, err := models.ParseFilterKind(kind); err != nil {
		http.Error(w, "Invalid argument "+FILTER_KIND_FORM_ARG, http.StatusBadRequest)
		return
	}
	if _, err := h.arrivalService.SetFilter(r.Context(), sessionID(w, r), kind); err != nil {
		internalError(w, r, "failed to set filter", err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ApplyFilterQuery handles POST /filter/query
func (h *ArrivalHandler) ApplyFilterQuery(w http.ResponseWriter, r *http.Request) {
	query := r.PostFormValue(FILTER_QUERY_FORM_ARG)
	if _, err := h.arrivalService.ApplyFilterQuery(r.Context(), sessionID(w, r), query); err != nil {
		internalError(w, r, "failed to apply filter", err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// GetChart handles GET /chart
func (h *ArrivalHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	s, err := h.arrivalService.GetSession(r.Context(), sessionID(w, r))
	if err != nil {
		internalError(w, r, "failed to load session", err)
		return
	}

	var buf bytes.Buffer
	if err := util.PlotArrivalEtas(&buf, s.StopID, s.Rows); err != nil {
		internalError(w, r, "failed to plot arrivals", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// GetArrivals handles GET /v1/arrivals?id={stopId}&filter={kind}&q={query}
func (h *ArrivalHandler) GetArrivals(w http.ResponseWriter, r *http.Request) {
	vals := r.URL.Query()
	kind, err := models.ParseFilterKind(vals.Get(FILTER_KIND_QUERY_ARG))
	if err != nil {
		http.Error(w, "Invalid argument "+FILTER_KIND_QUERY_ARG, http.StatusBadRequest)
		return
	}

	raw := vals.Get(STOP_ID_QUERY_ARG)
	status := http.StatusOK
	if _, warning := services.ValidateStopID(raw); warning != "" {
		status = http.StatusBadRequest
	}

	s := h.arrivalService.Lookup(r.Context(), raw, models.FilterSpec{Kind: kind, Query: vals.Get(FILTER_QUERY_QUERY_ARG)})
	response := ArrivalsResponse{
		StopID:       s.StopID,
		Filter:       s.Filter,
		Rows:         s.Rows,
		Instructions: render.RenderRows(s.Rows),
	}
	if response.Rows == nil {
		response.Rows = []models.DisplayRow{}
	}
	if s.Warning.Visible {
		response.Warning = s.Warning.Text
	}
	if s.Info.Visible {
		response.Info = s.Info.Text
	}
	writeJSON(w, r, status, response)
}

// Ping handles GET /ping
func (h *ArrivalHandler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "pong"})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.LogError(logging.FromContext(r.Context()), "failed to encode response", err)
	}
}

func internalError(w http.ResponseWriter, r *http.Request, message string, err error) {
	logging.LogError(logging.FromContext(r.Context()), message, err,
		slog.String("path", r.URL.Path))
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}
