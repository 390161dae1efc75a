package csvimport

import (
	"fmt"
	"strconv"
	"strings"
)

// DealRecord is one import-ready deal, produced for every valid row.
// Numeric columns that fail to parse become zero, matching the
// commission engine's degradation rule.
type DealRecord struct {
	ClientName      string
	ClientPhone     string
	ClientEmail     string
	PropertyAddress string
	City            string
	State           string
	Zip             string
	DealType        string

	LeadSourceID   uint
	LeadSourceName string

	PipelineStatusID uint
	PipelineStatus   string
	LifecycleStage   string

	ExpectedSalePrice   float64
	ActualSalePrice     float64
	GrossCommissionRate float64
	BrokerageSplitRate  float64
	ReferralOutRate     float64
	ReferralInRate      float64
	TransactionFee      float64

	// CloseDate is ISO YYYY-MM-DD, or empty when the column was blank.
	CloseDate string
}

// RowError pairs a file row number with that row's validation messages.
// The header is row 1, so the first data row reports as row 2.
type RowError struct {
	Row    int      `json:"row"`
	Errors []string `json:"errors"`
}

// Result is the aggregate outcome of one import run.
type Result struct {
	Success int        `json:"success"`
	Failed  int        `json:"failed"`
	Errors  []RowError `json:"errors,omitempty"`
	Deals   []DealRecord
}

// Importer runs the full pipeline: tokenize, normalize, validate and
// resolve each row against the reference sets. Both maps are keyed by
// lower-cased name; an empty status map disables status membership
// checks, an empty lead source map disables existence checks.
type Importer struct {
	LeadSources map[string]uint
	Statuses    map[string]StatusRef
}

// Run processes raw CSV text. It never fails as a whole: malformed rows
// are counted and reported, valid rows come back as DealRecords in file
// order.
func (imp *Importer) Run(text string) Result {
	rows := ParseCSV(text)
	if len(rows) < 2 {
		return Result{}
	}

	header := rows[0]
	var res Result

	for i, row := range rows[1:] {
		rowNum := i + 2
		rec := RowToRecord(header, row)
		_, errs := ValidateDealRow(rec, imp.Statuses)

		var leadSourceID uint
		leadSourceName := strings.TrimSpace(rec["lead_source_name"])
		if leadSourceName != "" && len(imp.LeadSources) > 0 {
			id, ok := imp.LeadSources[strings.ToLower(leadSourceName)]
			if !ok {
				errs = append(errs, fmt.Sprintf("lead_source_name %q does not match any lead source", leadSourceName))
			}
			leadSourceID = id
		}

		closeDate := ""
		if raw := strings.TrimSpace(rec["close_date"]); raw != "" {
			closeDate = ParseFlexibleDate(raw)
			if closeDate == "" {
				errs = append(errs, fmt.Sprintf("close_date %q is not a recognized date", raw))
			}
		}

		if len(errs) > 0 {
			res.Failed++
			res.Errors = append(res.Errors, RowError{Row: rowNum, Errors: errs})
			continue
		}

		statusName := strings.TrimSpace(rec["pipeline_status"])
		statusRef := imp.Statuses[strings.ToLower(statusName)]

		res.Success++
		res.Deals = append(res.Deals, DealRecord{
			ClientName:          strings.TrimSpace(rec["client_name"]),
			ClientPhone:         strings.TrimSpace(rec["client_phone"]),
			ClientEmail:         strings.TrimSpace(rec["client_email"]),
			PropertyAddress:     strings.TrimSpace(rec["property_address"]),
			City:                strings.TrimSpace(rec["city"]),
			State:               strings.TrimSpace(rec["state"]),
			Zip:                 strings.TrimSpace(rec["zip"]),
			DealType:            strings.TrimSpace(rec["deal_type"]),
			LeadSourceID:        leadSourceID,
			LeadSourceName:      leadSourceName,
			PipelineStatusID:    statusRef.ID,
			PipelineStatus:      statusName,
			LifecycleStage:      statusRef.LifecycleStage,
			ExpectedSalePrice:   parseMoney(rec["expected_sale_price"]),
			ActualSalePrice:     parseMoney(rec["actual_sale_price"]),
			GrossCommissionRate: parseMoney(rec["gross_commission_rate"]),
			BrokerageSplitRate:  parseMoney(rec["brokerage_split_rate"]),
			ReferralOutRate:     parseMoney(rec["referral_out_rate"]),
			ReferralInRate:      parseMoney(rec["referral_in_rate"]),
			TransactionFee:      parseMoney(rec["transaction_fee"]),
			CloseDate:           closeDate,
		})
	}

	return res
}

// parseMoney reads a currency or rate cell leniently: dollar signs,
// thousands separators and whitespace are stripped, and anything still
// unparseable degrades to zero instead of failing the row.
func parseMoney(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
