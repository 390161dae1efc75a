package analytics

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/closetrack/api-crm/internal/deal"
	"github.com/gorilla/mux"
)

// Handler serves the reporting routes under a workspace.
type Handler struct {
	Deals *deal.Repository
}

func NewHandler(deals *deal.Repository) *Handler {
	return &Handler{Deals: deals}
}

// Summary handles GET /workspaces/{wid}/analytics/summary?year=YYYY.
// The year defaults to the current one.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	wid, err := strconv.Atoi(mux.Vars(r)["wid"])
	if err != nil {
		http.Error(w, "invalid workspace id", http.StatusBadRequest)
		return
	}

	year := time.Now().UTC().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		year, err = strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "invalid year", http.StatusBadRequest)
			return
		}
	}

	deals, err := h.Deals.ListForReporting(uint(wid))
	if err != nil {
		http.Error(w, "could not load deals", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(BuildSummary(deals, year))
}
