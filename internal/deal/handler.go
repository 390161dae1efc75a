package deal

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/closetrack/api-crm/internal/commission"
	"github.com/closetrack/api-crm/internal/csvimport"
	"github.com/closetrack/api-crm/internal/leadsource"
	"github.com/closetrack/api-crm/internal/notification"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

// Handler serves the deal routes under a workspace.
type Handler struct {
	Repo     *Repository
	validate *validator.Validate
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo, validate: validator.New()}
}

func workspaceID(r *http.Request) (uint, bool) {
	wid, err := strconv.Atoi(mux.Vars(r)["wid"])
	if err != nil {
		return 0, false
	}
	return uint(wid), true
}

func dealID(r *http.Request) (uint, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// Create handles POST /workspaces/{wid}/deals.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	wid, ok := workspaceID(r)
	if !ok {
		http.Error(w, "invalid workspace id", http.StatusBadRequest)
		return
	}

	var req SaveDealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	closeDate := ""
	if req.CloseDate != "" {
		closeDate = csvimport.ParseFlexibleDate(req.CloseDate)
		if closeDate == "" {
			http.Error(w, "closeDate is not a recognized date", http.StatusBadRequest)
			return
		}
	}

	// duplicate-client alert is advisory: a lookup failure never blocks
	// the create
	if n, err := h.Repo.CountByClientName(wid, req.ClientName); err == nil && n > 0 {
		go notification.SendDuplicateClientAlert(wid, req.ClientName)
	}

	d := Deal{
		WorkspaceID:         wid,
		AgentID:             req.AgentID,
		ClientName:          req.ClientName,
		ClientPhone:         req.ClientPhone,
		ClientEmail:         req.ClientEmail,
		PropertyAddress:     req.PropertyAddress,
		City:                req.City,
		State:               req.State,
		Zip:                 req.Zip,
		DealType:            req.DealType,
		LeadSourceID:        req.LeadSourceID,
		PipelineStatusID:    req.PipelineStatusID,
		ExpectedSalePrice:   req.ExpectedSalePrice,
		ActualSalePrice:     req.ActualSalePrice,
		GrossCommissionRate: req.GrossCommissionRate,
		BrokerageSplitRate:  req.BrokerageSplitRate,
		ReferralOutRate:     req.ReferralOutRate,
		ReferralInRate:      req.ReferralInRate,
		TransactionFee:      req.TransactionFee,
		CloseDate:           closeDate,
	}
	if err := h.Repo.Create(&d); err != nil {
		http.Error(w, "could not save deal", http.StatusInternalServerError)
		return
	}

	if h.Repo.statusIsClosed(wid, d.PipelineStatusID) {
		_ = h.Repo.StampClosed(&d)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(d)
}

// List handles GET /workspaces/{wid}/deals with optional status and
// agent query filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	wid, ok := workspaceID(r)
	if !ok {
		http.Error(w, "invalid workspace id", http.StatusBadRequest)
		return
	}

	statusID, _ := strconv.Atoi(r.URL.Query().Get("status"))
	agentID, _ := strconv.Atoi(r.URL.Query().Get("agent"))

	list, err := h.Repo.ListByWorkspace(wid, uint(statusID), uint(agentID))
	if err != nil {
		http.Error(w, "could not list deals", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// Get handles GET /workspaces/{wid}/deals/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	wid, ok := workspaceID(r)
	if !ok {
		http.Error(w, "invalid workspace id", http.StatusBadRequest)
		return
	}
	id, ok := dealID(r)
	if !ok {
		http.Error(w, "invalid deal id", http.StatusBadRequest)
		return
	}

	d, err := h.Repo.FindByID(wid, id)
	if err != nil {
		http.Error(w, "deal not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(d)
}

// Update handles PUT /workspaces/{wid}/deals/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	wid, ok := workspaceID(r)
	if !ok {
		http.Error(w, "invalid workspace id", http.StatusBadRequest)
		return
	}
	id, ok := dealID(r)
	if !ok {
		http.Error(w, "invalid deal id", http.StatusBadRequest)
		return
	}

	d, err := h.Repo.FindByID(wid, id)
	if err != nil {
		http.Error(w, "deal not found", http.StatusNotFound)
		return
	}

	var req SaveDealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	closeDate := ""
	if req.CloseDate != "" {
		closeDate = csvimport.ParseFlexibleDate(req.CloseDate)
		if closeDate == "" {
			http.Error(w, "closeDate is not a recognized date", http.StatusBadRequest)
			return
		}
	}

	wasClosed := d.ClosedAt != nil

	d.AgentID = req.AgentID
	d.ClientName = req.ClientName
	d.ClientPhone = req.ClientPhone
	d.ClientEmail = req.ClientEmail
	d.PropertyAddress = req.PropertyAddress
	d.City = req.City
	d.State = req.State
	d.Zip = req.Zip
	d.DealType = req.DealType
	d.LeadSourceID = req.LeadSourceID
	d.PipelineStatusID = req.PipelineStatusID
	d.ExpectedSalePrice = req.ExpectedSalePrice
	d.ActualSalePrice = req.ActualSalePrice
	d.GrossCommissionRate = req.GrossCommissionRate
	d.BrokerageSplitRate = req.BrokerageSplitRate
	d.ReferralOutRate = req.ReferralOutRate
	d.ReferralInRate = req.ReferralInRate
	d.TransactionFee = req.TransactionFee
	d.CloseDate = closeDate
	d.LeadSource = nil
	d.PipelineStatus = nil

	if err := h.Repo.Update(d); err != nil {
		http.Error(w, "could not update deal", http.StatusInternalServerError)
		return
	}

	if !wasClosed && h.Repo.statusIsClosed(wid, d.PipelineStatusID) {
		_ = h.Repo.StampClosed(d)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(d)
}

// Delete handles DELETE /workspaces/{wid}/deals/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	wid, ok := workspaceID(r)
	if !ok {
		http.Error(w, "invalid workspace id", http.StatusBadRequest)
		return
	}
	id, ok := dealID(r)
	if !ok {
		http.Error(w, "invalid deal id", http.StatusBadRequest)
		return
	}

	d, err := h.Repo.FindByID(wid, id)
	if err != nil {
		http.Error(w, "deal not found", http.StatusNotFound)
		return
	}

	if err := h.Repo.Delete(d); err != nil {
		http.Error(w, "could not delete deal", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Commission handles GET /workspaces/{wid}/deals/{id}/commission and
// returns the full payout breakdown. The includeReferralIn and
// preferExpected query params map onto the engine options.
func (h *Handler) Commission(w http.ResponseWriter, r *http.Request) {
	wid, ok := workspaceID(r)
	if !ok {
		http.Error(w, "invalid workspace id", http.StatusBadRequest)
		return
	}
	id, ok := dealID(r)
	if !ok {
		http.Error(w, "invalid deal id", http.StatusBadRequest)
		return
	}

	d, err := h.Repo.FindByID(wid, id)
	if err != nil {
		http.Error(w, "deal not found", http.StatusNotFound)
		return
	}

	opts := commission.DefaultOptions()
	if r.URL.Query().Get("includeReferralIn") == "true" {
		opts.IncludeReferralIn = true
	}
	if r.URL.Query().Get("preferExpected") == "true" {
		opts.PreferActual = false
	}

	source := d.LeadSource
	if source == nil {
		// deal without a source still gets priced off its own fields
		source = &leadsource.LeadSource{}
	}
	breakdown := commission.CalculateBreakdown(source.PayoutInput(d.Financials()), opts)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(breakdown)
}
