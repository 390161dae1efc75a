package analytics

import (
	"testing"
	"time"

	"github.com/closetrack/api-crm/internal/deal"
	"github.com/closetrack/api-crm/internal/leadsource"
	"github.com/closetrack/api-crm/internal/pipelinestatus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloseDateUTCPrecedence(t *testing.T) {
	stamped := time.Date(2024, 9, 1, 14, 30, 0, 0, time.UTC)

	// explicit close date wins over the stamped timestamp
	got := CloseDateUTC("2024-08-15", &stamped)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC), *got)

	// flexible formats are accepted
	got = CloseDateUTC("8/15/24", nil)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC), *got)

	// unparseable close date falls back to closed_at
	got = CloseDateUTC("soon", &stamped)
	require.NotNil(t, got)
	assert.Equal(t, stamped, *got)

	// neither usable
	assert.Nil(t, CloseDateUTC("", nil))
}

func closedStatus() *pipelinestatus.PipelineStatus {
	return &pipelinestatus.PipelineStatus{Name: "Closed", LifecycleStage: pipelinestatus.StageClosed}
}

func TestBuildSummary(t *testing.T) {
	source := &leadsource.LeadSource{
		PayoutStructure:            "standard",
		BrokerageSplitRate:         0.2,
		DefaultGrossCommissionRate: 0.03,
	}
	openStatus := &pipelinestatus.PipelineStatus{Name: "Contacted", LifecycleStage: pipelinestatus.StageInProgress}
	stamped := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)

	deals := []deal.Deal{
		{ActualSalePrice: 500000, PipelineStatus: closedStatus(), LeadSource: source, CloseDate: "2024-08-15"},
		{ActualSalePrice: 400000, PipelineStatus: closedStatus(), LeadSource: source, ClosedAt: &stamped},
		// open deal: counted in the total only
		{ActualSalePrice: 300000, PipelineStatus: openStatus, LeadSource: source},
		// closed in a different year: excluded from buckets
		{ActualSalePrice: 200000, PipelineStatus: closedStatus(), LeadSource: source, CloseDate: "2023-11-01"},
		// closed with no usable date: excluded from buckets
		{ActualSalePrice: 100000, PipelineStatus: closedStatus(), LeadSource: source},
	}

	s := BuildSummary(deals, 2024)

	assert.Equal(t, 5, s.TotalDeals)
	assert.Equal(t, 2, s.ClosedDeals)
	require.Len(t, s.Months, 12)

	august := s.Months[7]
	assert.Equal(t, 8, august.Month)
	assert.Equal(t, 1, august.Deals)
	assert.InDelta(t, 15000.0, august.GCI, 1e-9)
	assert.InDelta(t, 12000.0, august.Net, 1e-9)

	march := s.Months[2]
	assert.Equal(t, 1, march.Deals)
	assert.InDelta(t, 12000.0, march.GCI, 1e-9)

	assert.InDelta(t, 27000.0, s.GCI, 1e-9)
	assert.InDelta(t, 21600.0, s.Net, 1e-9)
}

func TestBuildSummaryEmpty(t *testing.T) {
	s := BuildSummary(nil, 2024)
	assert.Equal(t, 0, s.TotalDeals)
	assert.Equal(t, 0, s.ClosedDeals)
	require.Len(t, s.Months, 12)
	assert.Equal(t, 0.0, s.GCI)
}
