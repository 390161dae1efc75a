package commission

import "math"

// PayoutStructure selects the payout model configured on a lead source.
type PayoutStructure string

const (
	PayoutStandard    PayoutStructure = "standard"
	PayoutPartnership PayoutStructure = "partnership"
	PayoutTiered      PayoutStructure = "tiered"
)

type DeductionType string

const (
	DeductionFlat       DeductionType = "flat"
	DeductionPercentage DeductionType = "percentage"
)

// TieredSplit is one sale-price bracket of a tiered brokerage split.
// MaxAmount nil means the bracket is open-ended at the top.
type TieredSplit struct {
	MinAmount float64  `json:"minAmount"`
	MaxAmount *float64 `json:"maxAmount"`
	SplitRate float64  `json:"splitRate"`
}

// Deduction is a named fee applied after the transaction fee, in
// ascending ApplyOrder. Percentage values are fractions of the running
// balance at that step, not of the original amount.
type Deduction struct {
	Name       string        `json:"name"`
	Type       DeductionType `json:"type"`
	Value      float64       `json:"value"`
	ApplyOrder int           `json:"applyOrder"`
}

// Input carries the financial facts of one deal. Rates are fractions
// (0.03 = 3%). A zero referral rate means the stage is skipped.
type Input struct {
	ExpectedSalePrice    float64         `json:"expectedSalePrice"`
	ActualSalePrice      float64         `json:"actualSalePrice"`
	GrossCommissionRate  float64         `json:"grossCommissionRate"`
	BrokerageSplitRate   float64         `json:"brokerageSplitRate"`
	ReferralOutRate      float64         `json:"referralOutRate"`
	ReferralInRate       float64         `json:"referralInRate"`
	TransactionFee       float64         `json:"transactionFee"`
	PayoutStructure      PayoutStructure `json:"payoutStructure"`
	PartnershipSplitRate float64         `json:"partnershipSplitRate"`
	TieredSplits         []TieredSplit   `json:"tieredSplits,omitempty"`
	Deductions           []Deduction     `json:"deductions,omitempty"`
}

// Options controls which side of the optional stages the caller wants.
type Options struct {
	// PreferActual uses the actual sale price when present, falling back
	// to the expected price. False reverses the preference.
	PreferActual bool
	// IncludeReferralIn adds the referral-in stage, which increases the
	// figure. Excluded unless the caller opts in.
	IncludeReferralIn bool
}

// DefaultOptions prefers the actual sale price and excludes referral-in.
func DefaultOptions() Options {
	return Options{PreferActual: true}
}

// DeductionLine is one applied deduction in a Breakdown.
type DeductionLine struct {
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
	Remaining float64 `json:"remaining"`
}

// Breakdown exposes every intermediate value of the calculation so a
// payout explanation can be rendered from a single call.
type Breakdown struct {
	SalePrice        float64         `json:"salePrice"`
	Gross            float64         `json:"gross"`
	AfterPartnership float64         `json:"afterPartnership"`
	AfterBrokerage   float64         `json:"afterBrokerage"`
	AfterReferralOut float64         `json:"afterReferralOut"`
	AfterReferralIn  float64         `json:"afterReferralIn"`
	TransactionFee   float64         `json:"transactionFee"`
	TotalDeductions  float64         `json:"totalDeductions"`
	DeductionDetails []DeductionLine `json:"deductionDetails,omitempty"`
	Net              float64         `json:"net"`
}

// sanitize coerces NaN and infinities to zero. Missing numerics arrive
// as zero already, so after this pass every field is safe arithmetic.
func sanitize(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// normalized returns a copy with every numeric field coerced through
// sanitize. This is the single seam where degradation happens; the
// engine itself never re-checks.
func (in Input) normalized() Input {
	in.ExpectedSalePrice = sanitize(in.ExpectedSalePrice)
	in.ActualSalePrice = sanitize(in.ActualSalePrice)
	in.GrossCommissionRate = sanitize(in.GrossCommissionRate)
	in.BrokerageSplitRate = sanitize(in.BrokerageSplitRate)
	in.ReferralOutRate = sanitize(in.ReferralOutRate)
	in.ReferralInRate = sanitize(in.ReferralInRate)
	in.TransactionFee = sanitize(in.TransactionFee)
	in.PartnershipSplitRate = sanitize(in.PartnershipSplitRate)

	if len(in.TieredSplits) > 0 {
		tiers := make([]TieredSplit, len(in.TieredSplits))
		copy(tiers, in.TieredSplits)
		for i := range tiers {
			tiers[i].MinAmount = sanitize(tiers[i].MinAmount)
			tiers[i].SplitRate = sanitize(tiers[i].SplitRate)
			if tiers[i].MaxAmount != nil {
				upper := sanitize(*tiers[i].MaxAmount)
				tiers[i].MaxAmount = &upper
			}
		}
		in.TieredSplits = tiers
	}

	if len(in.Deductions) > 0 {
		deds := make([]Deduction, len(in.Deductions))
		copy(deds, in.Deductions)
		for i := range deds {
			deds[i].Value = sanitize(deds[i].Value)
		}
		in.Deductions = deds
	}

	return in
}
