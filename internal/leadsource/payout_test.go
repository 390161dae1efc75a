package leadsource

import (
	"testing"

	"github.com/closetrack/api-crm/internal/commission"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

func TestPayoutInputDefaults(t *testing.T) {
	ls := &LeadSource{
		PayoutStructure:            "standard",
		BrokerageSplitRate:         0.2,
		DefaultGrossCommissionRate: 0.03,
		DefaultReferralOutRate:     0.25,
		DefaultTransactionFee:      395,
	}

	in := ls.PayoutInput(DealFinancials{ActualSalePrice: 500000})

	assert.Equal(t, commission.PayoutStandard, in.PayoutStructure)
	assert.Equal(t, 0.03, in.GrossCommissionRate)
	assert.Equal(t, 0.2, in.BrokerageSplitRate)
	assert.Equal(t, 0.25, in.ReferralOutRate)
	assert.Equal(t, 395.0, in.TransactionFee)
}

func TestPayoutInputDealOverrides(t *testing.T) {
	ls := &LeadSource{
		BrokerageSplitRate:         0.2,
		DefaultGrossCommissionRate: 0.03,
		DefaultReferralOutRate:     0.25,
		DefaultTransactionFee:      395,
	}

	in := ls.PayoutInput(DealFinancials{
		ActualSalePrice:     500000,
		GrossCommissionRate: 0.025,
		BrokerageSplitRate:  ptr(0.1),
		ReferralOutRate:     ptr(0), // explicit zero override disables the stage
		TransactionFee:      ptr(500),
	})

	assert.Equal(t, 0.025, in.GrossCommissionRate)
	assert.Equal(t, 0.1, in.BrokerageSplitRate)
	assert.Equal(t, 0.0, in.ReferralOutRate)
	assert.Equal(t, 500.0, in.TransactionFee)
}

func TestPayoutInputChildRows(t *testing.T) {
	ls := &LeadSource{
		PayoutStructure: "tiered",
		TieredSplits: []TieredSplit{
			{MinAmount: 0, MaxAmount: ptr(499999), SplitRate: 0.3},
			{MinAmount: 500000, SplitRate: 0.15},
		},
		Deductions: []CustomDeduction{
			{Name: "desk fee", Type: "flat", Value: 500, ApplyOrder: 1},
			{Name: "marketing", Type: "percentage", Value: 0.05, ApplyOrder: 2},
		},
	}

	in := ls.PayoutInput(DealFinancials{ActualSalePrice: 600000, GrossCommissionRate: 0.03})

	require.Len(t, in.TieredSplits, 2)
	require.Len(t, in.Deductions, 2)
	assert.Equal(t, commission.DeductionPercentage, in.Deductions[1].Type)

	// end to end through the engine: 600000*0.03*(1-0.15) floor tier
	b := commission.CalculateBreakdown(in, commission.DefaultOptions())
	assert.InDelta(t, (18000*0.85-500)*0.95, b.Net, 1e-6)
}
