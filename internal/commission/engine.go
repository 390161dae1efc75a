package commission

import (
	"sort"

	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// CalculateBreakdown runs the full payout calculation for one deal.
// It is pure, never errors, and coerces any NaN/Inf input to zero
// before touching it. Arithmetic runs in decimals so stage results
// stay exact; the breakdown carries floats for the JSON surface.
func CalculateBreakdown(in Input, opts Options) Breakdown {
	in = in.normalized()

	salePrice := decimal.NewFromFloat(selectSalePrice(in, opts.PreferActual))
	gross := salePrice.Mul(decimal.NewFromFloat(in.GrossCommissionRate))

	afterPartnership := gross
	if in.PayoutStructure == PayoutPartnership && in.PartnershipSplitRate > 0 {
		afterPartnership = gross.Mul(one.Sub(decimal.NewFromFloat(in.PartnershipSplitRate)))
	}

	splitRate := in.BrokerageSplitRate
	if in.PayoutStructure == PayoutTiered && len(in.TieredSplits) > 0 {
		splitRate = resolveTierRate(in.TieredSplits, salePrice)
	}
	afterBrokerage := afterPartnership.Mul(one.Sub(decimal.NewFromFloat(splitRate)))

	afterReferralOut := afterBrokerage
	if in.ReferralOutRate > 0 {
		afterReferralOut = afterBrokerage.Mul(one.Sub(decimal.NewFromFloat(in.ReferralOutRate)))
	}

	afterReferralIn := afterReferralOut
	if opts.IncludeReferralIn && in.ReferralInRate > 0 {
		afterReferralIn = afterReferralOut.Mul(one.Add(decimal.NewFromFloat(in.ReferralInRate)))
	}

	afterFee := afterReferralIn.Sub(decimal.NewFromFloat(in.TransactionFee))
	if afterFee.IsNegative() {
		afterFee = decimal.Zero
	}

	remaining, totalDeducted, details := applyDeductions(afterFee, in.Deductions)

	return Breakdown{
		SalePrice:        salePrice.InexactFloat64(),
		Gross:            gross.InexactFloat64(),
		AfterPartnership: afterPartnership.InexactFloat64(),
		AfterBrokerage:   afterBrokerage.InexactFloat64(),
		AfterReferralOut: afterReferralOut.InexactFloat64(),
		AfterReferralIn:  afterReferralIn.InexactFloat64(),
		TransactionFee:   in.TransactionFee,
		TotalDeductions:  totalDeducted.InexactFloat64(),
		DeductionDetails: details,
		Net:              remaining.InexactFloat64(),
	}
}

// NetCommission returns the final net figure with default options.
func NetCommission(in Input) float64 {
	return CalculateBreakdown(in, DefaultOptions()).Net
}

// GrossCommission returns sale price times gross commission rate,
// preferring the actual sale price.
func GrossCommission(in Input) float64 {
	return CalculateBreakdown(in, DefaultOptions()).Gross
}

// ActualGCI is the gross commission income based on the actual sale
// price when one is recorded.
func ActualGCI(in Input) float64 {
	return CalculateBreakdown(in, Options{PreferActual: true}).Gross
}

// ExpectedGCI is the gross commission income based on the expected sale
// price, falling back to the actual one.
func ExpectedGCI(in Input) float64 {
	return CalculateBreakdown(in, Options{PreferActual: false}).Gross
}

// selectSalePrice picks exactly one of the two recorded prices. The
// preferred side wins when present and non-zero.
func selectSalePrice(in Input, preferActual bool) float64 {
	if preferActual {
		if in.ActualSalePrice != 0 {
			return in.ActualSalePrice
		}
		return in.ExpectedSalePrice
	}
	if in.ExpectedSalePrice != 0 {
		return in.ExpectedSalePrice
	}
	return in.ActualSalePrice
}

// resolveTierRate finds the bracket the sale price falls into. Tiers are
// matched in ascending MinAmount order; a price beyond every bracket's
// upper bound uses the last sorted tier, treating it as open-ended.
func resolveTierRate(tiers []TieredSplit, salePrice decimal.Decimal) float64 {
	sorted := make([]TieredSplit, len(tiers))
	copy(sorted, tiers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MinAmount < sorted[j].MinAmount
	})

	price := salePrice.InexactFloat64()
	for _, tier := range sorted {
		if price < tier.MinAmount {
			continue
		}
		if tier.MaxAmount == nil || price <= *tier.MaxAmount {
			return tier.SplitRate
		}
	}
	return sorted[len(sorted)-1].SplitRate
}

// applyDeductions is a left-fold over the sorted deduction list carrying
// the shrinking balance. Flat deductions are capped at the remaining
// balance; percentage deductions read the balance as reduced by the
// deductions before them.
func applyDeductions(balance decimal.Decimal, deductions []Deduction) (decimal.Decimal, decimal.Decimal, []DeductionLine) {
	if len(deductions) == 0 {
		return balance, decimal.Zero, nil
	}

	sorted := make([]Deduction, len(deductions))
	copy(sorted, deductions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ApplyOrder < sorted[j].ApplyOrder
	})

	remaining := balance
	total := decimal.Zero
	details := make([]DeductionLine, 0, len(sorted))

	for _, d := range sorted {
		var amount decimal.Decimal
		switch d.Type {
		case DeductionPercentage:
			amount = remaining.Mul(decimal.NewFromFloat(d.Value))
		default:
			amount = decimal.NewFromFloat(d.Value)
			if amount.GreaterThan(remaining) {
				amount = remaining
			}
		}
		if amount.IsNegative() {
			amount = decimal.Zero
		}

		remaining = remaining.Sub(amount)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}
		total = total.Add(amount)
		details = append(details, DeductionLine{
			Name:      d.Name,
			Amount:    amount.InexactFloat64(),
			Remaining: remaining.InexactFloat64(),
		})
	}

	return remaining, total, details
}
