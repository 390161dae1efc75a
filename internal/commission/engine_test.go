package commission

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

func TestNetCommissionStandard(t *testing.T) {
	in := Input{
		ActualSalePrice:     500000,
		GrossCommissionRate: 0.03,
		BrokerageSplitRate:  0.2,
		TransactionFee:      500,
		PayoutStructure:     PayoutStandard,
	}

	// 500000 * 0.03 * 0.8 - 500
	require.Equal(t, 11500.0, NetCommission(in))
}

func TestStandardFormulaWithReferralOut(t *testing.T) {
	in := Input{
		ActualSalePrice:     400000,
		GrossCommissionRate: 0.025,
		BrokerageSplitRate:  0.3,
		ReferralOutRate:     0.25,
		TransactionFee:      250,
	}

	want := 400000*0.025*(1-0.3)*(1-0.25) - 250
	assert.InDelta(t, want, NetCommission(in), 1e-9)
}

func TestSalePriceSelection(t *testing.T) {
	in := Input{
		ExpectedSalePrice:   300000,
		ActualSalePrice:     310000,
		GrossCommissionRate: 0.03,
	}

	b := CalculateBreakdown(in, Options{PreferActual: true})
	assert.Equal(t, 310000.0, b.SalePrice)

	b = CalculateBreakdown(in, Options{PreferActual: false})
	assert.Equal(t, 300000.0, b.SalePrice)

	// preferred side missing falls back to the other
	in.ActualSalePrice = 0
	b = CalculateBreakdown(in, Options{PreferActual: true})
	assert.Equal(t, 300000.0, b.SalePrice)
}

func TestGCIWrappers(t *testing.T) {
	in := Input{
		ExpectedSalePrice:   300000,
		ActualSalePrice:     320000,
		GrossCommissionRate: 0.03,
	}

	assert.InDelta(t, 9600.0, ActualGCI(in), 1e-9)
	assert.InDelta(t, 9000.0, ExpectedGCI(in), 1e-9)
	assert.InDelta(t, 9600.0, GrossCommission(in), 1e-9)
}

func TestPartnershipStage(t *testing.T) {
	in := Input{
		ActualSalePrice:      500000,
		GrossCommissionRate:  0.03,
		BrokerageSplitRate:   0.2,
		PayoutStructure:      PayoutPartnership,
		PartnershipSplitRate: 0.35,
	}

	b := CalculateBreakdown(in, DefaultOptions())
	assert.InDelta(t, 15000*(1-0.35), b.AfterPartnership, 1e-9)
	assert.InDelta(t, 15000*0.65*0.8, b.Net, 1e-9)

	// partnership fields are ignored under a standard structure
	in.PayoutStructure = PayoutStandard
	b = CalculateBreakdown(in, DefaultOptions())
	assert.Equal(t, b.Gross, b.AfterPartnership)
}

func TestTieredResolution(t *testing.T) {
	tiers := []TieredSplit{
		// declared out of order on purpose
		{MinAmount: 500000, MaxAmount: nil, SplitRate: 0.1},
		{MinAmount: 0, MaxAmount: ptr(249999), SplitRate: 0.3},
		{MinAmount: 250000, MaxAmount: ptr(499999), SplitRate: 0.2},
	}
	base := Input{
		GrossCommissionRate: 0.03,
		BrokerageSplitRate:  0.5, // must be ignored when tiers match
		PayoutStructure:     PayoutTiered,
		TieredSplits:        tiers,
	}

	cases := []struct {
		price float64
		rate  float64
	}{
		{100000, 0.3},
		{250000, 0.2},
		{499999, 0.2},
		{500000, 0.1},
		{2000000, 0.1},
	}
	for _, tc := range cases {
		in := base
		in.ActualSalePrice = tc.price
		b := CalculateBreakdown(in, DefaultOptions())
		assert.InDelta(t, tc.price*0.03*(1-tc.rate), b.Net, 1e-6, "price %v", tc.price)
	}
}

func TestTieredFallbackToTopTier(t *testing.T) {
	// every tier bounded; price beyond all of them uses the highest one
	in := Input{
		ActualSalePrice:     900000,
		GrossCommissionRate: 0.03,
		PayoutStructure:     PayoutTiered,
		TieredSplits: []TieredSplit{
			{MinAmount: 0, MaxAmount: ptr(300000), SplitRate: 0.3},
			{MinAmount: 300001, MaxAmount: ptr(600000), SplitRate: 0.15},
		},
	}

	b := CalculateBreakdown(in, DefaultOptions())
	assert.InDelta(t, 900000*0.03*(1-0.15), b.Net, 1e-6)
}

func TestTieredWithNoTiersUsesFlatRate(t *testing.T) {
	in := Input{
		ActualSalePrice:     500000,
		GrossCommissionRate: 0.03,
		BrokerageSplitRate:  0.2,
		PayoutStructure:     PayoutTiered,
	}

	require.Equal(t, 12000.0, NetCommission(in))
}

func TestTierInputSliceNotReordered(t *testing.T) {
	tiers := []TieredSplit{
		{MinAmount: 500000, SplitRate: 0.1},
		{MinAmount: 0, MaxAmount: ptr(499999), SplitRate: 0.3},
	}
	in := Input{
		ActualSalePrice:     100000,
		GrossCommissionRate: 0.03,
		PayoutStructure:     PayoutTiered,
		TieredSplits:        tiers,
	}

	CalculateBreakdown(in, DefaultOptions())
	assert.Equal(t, 500000.0, tiers[0].MinAmount)
}

func TestReferralIn(t *testing.T) {
	in := Input{
		ActualSalePrice:     500000,
		GrossCommissionRate: 0.03,
		BrokerageSplitRate:  0.2,
		ReferralInRate:      0.25,
	}

	// excluded by default
	b := CalculateBreakdown(in, DefaultOptions())
	assert.Equal(t, b.AfterReferralOut, b.AfterReferralIn)

	b = CalculateBreakdown(in, Options{PreferActual: true, IncludeReferralIn: true})
	assert.InDelta(t, 12000*1.25, b.AfterReferralIn, 1e-9)
}

func TestTransactionFeeFloorsAtZero(t *testing.T) {
	in := Input{
		ActualSalePrice:     10000,
		GrossCommissionRate: 0.01,
		TransactionFee:      5000,
	}

	b := CalculateBreakdown(in, DefaultOptions())
	assert.Equal(t, 0.0, b.Net)
}

func TestDeductionsSequentialFold(t *testing.T) {
	in := Input{
		ActualSalePrice:     500000,
		GrossCommissionRate: 0.03,
		Deductions: []Deduction{
			// declared out of order; applied by ApplyOrder
			{Name: "marketing", Type: DeductionPercentage, Value: 0.1, ApplyOrder: 2},
			{Name: "desk fee", Type: DeductionFlat, Value: 1000, ApplyOrder: 1},
		},
	}

	b := CalculateBreakdown(in, DefaultOptions())
	require.Len(t, b.DeductionDetails, 2)
	assert.Equal(t, "desk fee", b.DeductionDetails[0].Name)
	assert.Equal(t, 1000.0, b.DeductionDetails[0].Amount)
	// percentage reads the balance already reduced by the flat fee
	assert.InDelta(t, (15000-1000)*0.1, b.DeductionDetails[1].Amount, 1e-9)
	assert.InDelta(t, (15000-1000)*0.9, b.Net, 1e-9)
	assert.InDelta(t, 1000+(15000-1000)*0.1, b.TotalDeductions, 1e-9)
}

func TestFlatDeductionCappedAtBalance(t *testing.T) {
	in := Input{
		ActualSalePrice:     100000,
		GrossCommissionRate: 0.01, // 1000 gross
		Deductions: []Deduction{
			{Name: "franchise", Type: DeductionFlat, Value: 5000, ApplyOrder: 1},
			{Name: "tech", Type: DeductionFlat, Value: 100, ApplyOrder: 2},
		},
	}

	b := CalculateBreakdown(in, DefaultOptions())
	assert.Equal(t, 0.0, b.Net)
	assert.Equal(t, 1000.0, b.DeductionDetails[0].Amount)
	assert.Equal(t, 0.0, b.DeductionDetails[1].Amount)
}

func TestZeroValueDeductionIsNoop(t *testing.T) {
	in := Input{
		ActualSalePrice:     500000,
		GrossCommissionRate: 0.03,
		BrokerageSplitRate:  0.2,
		TransactionFee:      500,
	}
	withZero := in
	withZero.Deductions = []Deduction{{Name: "none", Type: DeductionFlat, Value: 0, ApplyOrder: 1}}

	assert.Equal(t, NetCommission(in), NetCommission(withZero))
}

func TestNaNInputsDegradeToZero(t *testing.T) {
	in := Input{
		ActualSalePrice:     500000,
		GrossCommissionRate: 0.03,
		BrokerageSplitRate:  math.NaN(),
		ReferralOutRate:     math.Inf(1),
		TransactionFee:      math.NaN(),
	}

	require.Equal(t, 15000.0, NetCommission(in))
}

func TestZeroInputYieldsZeroBreakdown(t *testing.T) {
	b := CalculateBreakdown(Input{}, DefaultOptions())
	assert.Equal(t, 0.0, b.SalePrice)
	assert.Equal(t, 0.0, b.Net)
}
