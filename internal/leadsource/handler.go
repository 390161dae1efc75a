package leadsource

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

// Handler serves the lead source routes under a workspace.
type Handler struct {
	Repo     *Repository
	validate *validator.Validate
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo, validate: validator.New()}
}

func pathIDs(r *http.Request) (workspaceID, id uint, ok bool) {
	vars := mux.Vars(r)
	wid, err := strconv.Atoi(vars["wid"])
	if err != nil {
		return 0, 0, false
	}
	if raw, present := vars["id"]; present {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, false
		}
		id = uint(parsed)
	}
	return uint(wid), id, true
}

// Create handles POST /workspaces/{wid}/lead-sources.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	workspaceID, _, ok := pathIDs(r)
	if !ok {
		http.Error(w, "invalid workspace id", http.StatusBadRequest)
		return
	}

	var req SaveLeadSourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ls := req.toModel(workspaceID)
	if err := h.Repo.Create(ls); err != nil {
		http.Error(w, "could not save lead source", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(ls)
}

// List handles GET /workspaces/{wid}/lead-sources.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	workspaceID, _, ok := pathIDs(r)
	if !ok {
		http.Error(w, "invalid workspace id", http.StatusBadRequest)
		return
	}

	list, err := h.Repo.ListByWorkspace(workspaceID)
	if err != nil {
		http.Error(w, "could not list lead sources", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// Get handles GET /workspaces/{wid}/lead-sources/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	workspaceID, id, ok := pathIDs(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	ls, err := h.Repo.FindByID(workspaceID, id)
	if err != nil {
		http.Error(w, "lead source not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ls)
}

// Update handles PUT /workspaces/{wid}/lead-sources/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	workspaceID, id, ok := pathIDs(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	ls, err := h.Repo.FindByID(workspaceID, id)
	if err != nil {
		http.Error(w, "lead source not found", http.StatusNotFound)
		return
	}

	var req SaveLeadSourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed JSON", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	req.apply(ls)
	if err := h.Repo.Update(ls, req.tiers(), req.deductions()); err != nil {
		http.Error(w, "could not update lead source", http.StatusInternalServerError)
		return
	}

	updated, err := h.Repo.FindByID(workspaceID, id)
	if err != nil {
		http.Error(w, "could not reload lead source", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

// Delete handles DELETE /workspaces/{wid}/lead-sources/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	workspaceID, id, ok := pathIDs(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	ls, err := h.Repo.FindByID(workspaceID, id)
	if err != nil {
		http.Error(w, "lead source not found", http.StatusNotFound)
		return
	}

	if err := h.Repo.Delete(ls); err != nil {
		http.Error(w, "could not delete lead source", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (req *SaveLeadSourceRequest) toModel(workspaceID uint) *LeadSource {
	ls := &LeadSource{
		WorkspaceID:                workspaceID,
		Name:                       req.Name,
		Active:                     true,
		PayoutStructure:            req.structure(),
		BrokerageSplitRate:         req.BrokerageSplitRate,
		PartnershipSplitRate:       req.PartnershipSplitRate,
		DefaultGrossCommissionRate: req.DefaultGrossCommissionRate,
		DefaultReferralOutRate:     req.DefaultReferralOutRate,
		DefaultReferralInRate:      req.DefaultReferralInRate,
		DefaultTransactionFee:      req.DefaultTransactionFee,
		TieredSplits:               req.tiers(),
		Deductions:                 req.deductions(),
	}
	if req.Active != nil {
		ls.Active = *req.Active
	}
	return ls
}

func (req *SaveLeadSourceRequest) apply(ls *LeadSource) {
	ls.Name = req.Name
	ls.PayoutStructure = req.structure()
	ls.BrokerageSplitRate = req.BrokerageSplitRate
	ls.PartnershipSplitRate = req.PartnershipSplitRate
	ls.DefaultGrossCommissionRate = req.DefaultGrossCommissionRate
	ls.DefaultReferralOutRate = req.DefaultReferralOutRate
	ls.DefaultReferralInRate = req.DefaultReferralInRate
	ls.DefaultTransactionFee = req.DefaultTransactionFee
	ls.TieredSplits = nil
	ls.Deductions = nil
	if req.Active != nil {
		ls.Active = *req.Active
	}
}

func (req *SaveLeadSourceRequest) structure() string {
	if req.PayoutStructure == "" {
		return "standard"
	}
	return req.PayoutStructure
}

func (req *SaveLeadSourceRequest) tiers() []TieredSplit {
	out := make([]TieredSplit, 0, len(req.TieredSplits))
	for _, t := range req.TieredSplits {
		out = append(out, TieredSplit{MinAmount: t.MinAmount, MaxAmount: t.MaxAmount, SplitRate: t.SplitRate})
	}
	return out
}

func (req *SaveLeadSourceRequest) deductions() []CustomDeduction {
	out := make([]CustomDeduction, 0, len(req.Deductions))
	for _, d := range req.Deductions {
		out = append(out, CustomDeduction{Name: d.Name, Type: d.Type, Value: d.Value, ApplyOrder: d.ApplyOrder})
	}
	return out
}
