package csvimport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func refStatuses() map[string]StatusRef {
	return map[string]StatusRef{
		"new lead":  {ID: 1, LifecycleStage: "new"},
		"contacted": {ID: 2, LifecycleStage: "in_progress"},
	}
}

func TestValidateDealRowAccumulatesErrors(t *testing.T) {
	rec := map[string]string{
		"client_name":      "  ",
		"lead_source_name": "",
		"deal_type":        "flipper",
		"pipeline_status":  "",
	}

	ok, errs := ValidateDealRow(rec, refStatuses())
	assert.False(t, ok)
	require.Len(t, errs, 4)
	assert.Contains(t, errs, "client_name is required")
	assert.Contains(t, errs, "lead_source_name is required")
	assert.Contains(t, errs, "pipeline_status is required")
}

func TestValidateDealRowStatusMembership(t *testing.T) {
	rec := map[string]string{
		"client_name":      "John",
		"lead_source_name": "Zillow",
		"deal_type":        "buyer",
		"pipeline_status":  "Archived",
	}

	ok, errs := ValidateDealRow(rec, refStatuses())
	assert.False(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, `pipeline_status "Archived" is not a valid status`, errs[0])

	// membership is case-insensitive
	rec["pipeline_status"] = "NEW LEAD"
	ok, errs = ValidateDealRow(rec, refStatuses())
	assert.True(t, ok)
	assert.Empty(t, errs)

	// empty reference set disables the membership check
	rec["pipeline_status"] = "Archived"
	ok, _ = ValidateDealRow(rec, nil)
	assert.True(t, ok)
}

func TestImporterEndToEnd(t *testing.T) {
	csv := "client_name,deal_type,lead_source_name,pipeline_status\n" +
		"John Smith,buyer,Zillow,New Lead\n" +
		",seller,Zillow,Contacted\n"

	imp := Importer{
		LeadSources: map[string]uint{"zillow": 7},
		Statuses:    refStatuses(),
	}
	res := imp.Run(csv)

	assert.Equal(t, 1, res.Success)
	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 3, res.Errors[0].Row)
	assert.Equal(t, []string{"client_name is required"}, res.Errors[0].Errors)

	require.Len(t, res.Deals, 1)
	assert.Equal(t, "John Smith", res.Deals[0].ClientName)
	assert.Equal(t, uint(7), res.Deals[0].LeadSourceID)
	assert.Equal(t, uint(1), res.Deals[0].PipelineStatusID)
	assert.Equal(t, "new", res.Deals[0].LifecycleStage)
}

func TestImporterUnknownLeadSource(t *testing.T) {
	csv := "client_name,deal_type,lead_source_name,pipeline_status\n" +
		"John,buyer,Craigslist,New Lead\n"

	imp := Importer{
		LeadSources: map[string]uint{"zillow": 7},
		Statuses:    refStatuses(),
	}
	res := imp.Run(csv)

	assert.Equal(t, 0, res.Success)
	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, []string{`lead_source_name "Craigslist" does not match any lead source`}, res.Errors[0].Errors)
}

func TestImporterBadCloseDate(t *testing.T) {
	csv := "client_name,deal_type,lead_source_name,pipeline_status,close_date\n" +
		"John,buyer,Zillow,New Lead,2024-02-30\n" +
		"Jane,seller,Zillow,Contacted,12/15/24\n"

	imp := Importer{
		LeadSources: map[string]uint{"zillow": 7},
		Statuses:    refStatuses(),
	}
	res := imp.Run(csv)

	assert.Equal(t, 1, res.Success)
	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 2, res.Errors[0].Row)
	assert.Equal(t, "2024-12-15", res.Deals[0].CloseDate)
}

func TestImporterLenientNumerics(t *testing.T) {
	csv := "client_name,deal_type,lead_source_name,pipeline_status,expected_sale_price,transaction_fee\n" +
		`John,buyer,Zillow,New Lead,"$450,000",abc` + "\n"

	imp := Importer{Statuses: refStatuses()}
	res := imp.Run(csv)

	require.Equal(t, 1, res.Success)
	assert.Equal(t, 450000.0, res.Deals[0].ExpectedSalePrice)
	assert.Equal(t, 0.0, res.Deals[0].TransactionFee)
}

func TestImporterAcceptsOwnExample(t *testing.T) {
	imp := Importer{
		LeadSources: map[string]uint{"zillow": 1, "referral": 2, "website": 3},
		Statuses: map[string]StatusRef{
			"new lead":       {ID: 1, LifecycleStage: "new"},
			"under contract": {ID: 4, LifecycleStage: "in_progress"},
			"closed":         {ID: 5, LifecycleStage: "closed"},
		},
	}
	res := imp.Run(ExampleCSV())

	assert.Equal(t, 3, res.Success)
	assert.Equal(t, 0, res.Failed)
	assert.Empty(t, res.Errors)
	assert.Equal(t, "2024-08-15", res.Deals[1].CloseDate)
	assert.Equal(t, "2024-07-01", res.Deals[2].CloseDate)
}

func TestImporterEmptyInput(t *testing.T) {
	imp := Importer{}
	res := imp.Run("")
	assert.Equal(t, 0, res.Success)
	assert.Equal(t, 0, res.Failed)

	// a header with no data rows is an empty result, not an error
	res = imp.Run("client_name,deal_type\n")
	assert.Equal(t, 0, res.Success)
}
