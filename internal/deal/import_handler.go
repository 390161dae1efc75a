package deal

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/closetrack/api-crm/internal/csvimport"
	"github.com/closetrack/api-crm/internal/leadsource"
	"github.com/closetrack/api-crm/internal/notification"
	"github.com/closetrack/api-crm/internal/pipelinestatus"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// maxImportBytes caps an upload at 5 MB, far beyond any realistic
// pipeline export.
const maxImportBytes = 5 << 20

// ImportHandler drives the CSV import pipeline against a workspace's
// reference data and persists the accepted rows.
type ImportHandler struct {
	Deals    *Repository
	Sources  *leadsource.Repository
	Statuses *pipelinestatus.Repository
}

func NewImportHandler(deals *Repository, sources *leadsource.Repository, statuses *pipelinestatus.Repository) *ImportHandler {
	return &ImportHandler{Deals: deals, Sources: sources, Statuses: statuses}
}

type importResponse struct {
	Token   string               `json:"token"`
	Success int                  `json:"success"`
	Failed  int                  `json:"failed"`
	Errors  []csvimport.RowError `json:"errors"`
}

// Import handles POST /workspaces/{wid}/deals/import. The body is raw
// CSV text; row-level failures are reported in the response, never as an
// HTTP error.
func (h *ImportHandler) Import(w http.ResponseWriter, r *http.Request) {
	wid, ok := workspaceID(r)
	if !ok {
		http.Error(w, "invalid workspace id", http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		http.Error(w, "could not read upload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()
	if len(body) == 0 {
		http.Error(w, "empty upload", http.StatusBadRequest)
		return
	}

	sourceIndex, err := h.Sources.NameIndex(wid)
	if err != nil {
		http.Error(w, "could not load lead sources", http.StatusInternalServerError)
		return
	}
	statusIndex, err := h.Statuses.NameIndex(wid)
	if err != nil {
		http.Error(w, "could not load pipeline statuses", http.StatusInternalServerError)
		return
	}

	imp := csvimport.Importer{LeadSources: sourceIndex, Statuses: statusIndex}
	res := imp.Run(string(body))

	deals := make([]*Deal, 0, len(res.Deals))
	for _, rec := range res.Deals {
		deals = append(deals, fromRecord(wid, rec))
	}

	run := &ImportRun{
		WorkspaceID: wid,
		Token:       uuid.NewString(),
		Success:     res.Success,
		Failed:      res.Failed,
		Errors:      res.Errors,
	}
	if err := h.Deals.CreateBatch(deals, run); err != nil {
		http.Error(w, "could not persist import", http.StatusInternalServerError)
		return
	}

	if res.Failed > 0 {
		go notification.SendImportSummary(wid, run.Token, res.Success, res.Failed)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(importResponse{
		Token:   run.Token,
		Success: res.Success,
		Failed:  res.Failed,
		Errors:  res.Errors,
	})
}

// Example handles GET /workspaces/{wid}/deals/import/example with the
// downloadable template.
func (h *ImportHandler) Example(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="deals_import_example.csv"`)
	_, _ = io.WriteString(w, csvimport.ExampleCSV())
}

// Run handles GET /workspaces/{wid}/deals/import/{token}, replaying a
// past run's report.
func (h *ImportHandler) Run(w http.ResponseWriter, r *http.Request) {
	wid, ok := workspaceID(r)
	if !ok {
		http.Error(w, "invalid workspace id", http.StatusBadRequest)
		return
	}

	run, err := h.Deals.FindRun(wid, mux.Vars(r)["token"])
	if err != nil {
		http.Error(w, "import run not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(run)
}

// fromRecord converts one accepted CSV row into a deal insert. Zero rate
// columns stay nil so the lead source defaults apply, mirroring how the
// web form leaves overrides unset.
func fromRecord(wid uint, rec csvimport.DealRecord) *Deal {
	d := &Deal{
		WorkspaceID:         wid,
		ClientName:          rec.ClientName,
		ClientPhone:         rec.ClientPhone,
		ClientEmail:         rec.ClientEmail,
		PropertyAddress:     rec.PropertyAddress,
		City:                rec.City,
		State:               rec.State,
		Zip:                 rec.Zip,
		DealType:            rec.DealType,
		ExpectedSalePrice:   rec.ExpectedSalePrice,
		ActualSalePrice:     rec.ActualSalePrice,
		GrossCommissionRate: rec.GrossCommissionRate,
		CloseDate:           rec.CloseDate,
	}
	if rec.LeadSourceID != 0 {
		id := rec.LeadSourceID
		d.LeadSourceID = &id
	}
	if rec.PipelineStatusID != 0 {
		id := rec.PipelineStatusID
		d.PipelineStatusID = &id
	}
	if rec.BrokerageSplitRate != 0 {
		v := rec.BrokerageSplitRate
		d.BrokerageSplitRate = &v
	}
	if rec.ReferralOutRate != 0 {
		v := rec.ReferralOutRate
		d.ReferralOutRate = &v
	}
	if rec.ReferralInRate != 0 {
		v := rec.ReferralInRate
		d.ReferralInRate = &v
	}
	if rec.TransactionFee != 0 {
		v := rec.TransactionFee
		d.TransactionFee = &v
	}
	return d
}
