package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/omarshaarawi/sleeperboard/internal/metrics"
	"github.com/omarshaarawi/sleeperboard/internal/models"
)

const skeletonRows = 5

var errNotJSON = errors.New("upstream response is not JSON")

type pageData struct {
	View       models.Dashboard
	Loading    bool
	Refreshing bool
	Skeleton   []int
}

// Index renders the dashboard. Skeleton rows stand in for data until the
// first snapshot is published.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	view := h.dashboard.View()

	data := pageData{
		View:       view,
		Loading:    view.LoadedAt == nil && (view.Status == models.StatusLoading || view.Status == models.StatusIdle),
		Refreshing: view.Status == models.StatusLoading,
		Skeleton:   make([]int, skeletonRows),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, "dashboard.html", data); err != nil {
		slog.Error("Error rendering dashboard", "error", err)
	}
}

func (h *Handler) RefreshForm(w http.ResponseWriter, r *http.Request) {
	h.dashboard.TriggerRefresh(h.baseCtx)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, h.dashboard.View())
}

func (h *Handler) PostRefresh(w http.ResponseWriter, r *http.Request) {
	if !h.dashboard.TriggerRefresh(h.baseCtx) {
		h.errorResponse(w, http.StatusConflict, "Refresh already in progress")
		return
	}
	h.jsonResponse(w, http.StatusAccepted, map[string]string{"status": string(models.StatusLoading)})
}

// Relay forwards ?endpoint=<path> to the provider and returns its JSON body.
func (h *Handler) Relay(w http.ResponseWriter, r *http.Request) {
	values, ok := r.URL.Query()["endpoint"]
	if !ok || len(values) != 1 || !validEndpoint(values[0]) {
		metrics.ObserveRelay(http.StatusBadRequest)
		h.errorResponse(w, http.StatusBadRequest, "Invalid endpoint")
		return
	}
	endpoint := values[0]

	status, body, err := h.relay.Relay(r.Context(), endpoint)
	if err == nil && !json.Valid(body) {
		err = errNotJSON
	}
	if err != nil {
		slog.Error("Error relaying to Sleeper API", "endpoint", endpoint, "upstream_status", status, "error", err)
		metrics.ObserveRelay(http.StatusInternalServerError)
		h.errorResponse(w, http.StatusInternalServerError, "Error fetching data from Sleeper API")
		return
	}

	metrics.ObserveRelay(http.StatusOK)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// validEndpoint rejects empty paths and parent-directory segments so the
// relay cannot step outside the provider's API root.
func validEndpoint(endpoint string) bool {
	path := strings.TrimSpace(endpoint)
	if path == "" {
		return false
	}
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	for _, segment := range strings.Split(path, "/") {
		if segment == ".." {
			return false
		}
	}
	return true
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{"error": message})
}
