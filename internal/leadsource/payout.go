package leadsource

import "github.com/closetrack/api-crm/internal/commission"

// DealFinancials are the per-deal numbers a payout calculation needs.
// Pointer fields are overrides: nil falls back to the source's defaults.
type DealFinancials struct {
	ExpectedSalePrice   float64
	ActualSalePrice     float64
	GrossCommissionRate float64
	BrokerageSplitRate  *float64
	ReferralOutRate     *float64
	ReferralInRate      *float64
	TransactionFee      *float64
}

// PayoutInput merges a deal's numbers with this source's configuration
// into a commission engine input.
func (ls *LeadSource) PayoutInput(d DealFinancials) commission.Input {
	in := commission.Input{
		ExpectedSalePrice:    d.ExpectedSalePrice,
		ActualSalePrice:      d.ActualSalePrice,
		GrossCommissionRate:  d.GrossCommissionRate,
		BrokerageSplitRate:   ls.BrokerageSplitRate,
		ReferralOutRate:      ls.DefaultReferralOutRate,
		ReferralInRate:       ls.DefaultReferralInRate,
		TransactionFee:       ls.DefaultTransactionFee,
		PayoutStructure:      commission.PayoutStructure(ls.PayoutStructure),
		PartnershipSplitRate: ls.PartnershipSplitRate,
	}

	if in.GrossCommissionRate == 0 {
		in.GrossCommissionRate = ls.DefaultGrossCommissionRate
	}
	if d.BrokerageSplitRate != nil {
		in.BrokerageSplitRate = *d.BrokerageSplitRate
	}
	if d.ReferralOutRate != nil {
		in.ReferralOutRate = *d.ReferralOutRate
	}
	if d.ReferralInRate != nil {
		in.ReferralInRate = *d.ReferralInRate
	}
	if d.TransactionFee != nil {
		in.TransactionFee = *d.TransactionFee
	}

	for _, t := range ls.TieredSplits {
		in.TieredSplits = append(in.TieredSplits, commission.TieredSplit{
			MinAmount: t.MinAmount,
			MaxAmount: t.MaxAmount,
			SplitRate: t.SplitRate,
		})
	}
	for _, cd := range ls.Deductions {
		in.Deductions = append(in.Deductions, commission.Deduction{
			Name:       cd.Name,
			Type:       commission.DeductionType(cd.Type),
			Value:      cd.Value,
			ApplyOrder: cd.ApplyOrder,
		})
	}

	return in
}
