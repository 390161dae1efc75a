package leadsource

// TieredSplitDTO mirrors one bracket in create/update payloads.
type TieredSplitDTO struct {
	MinAmount float64  `json:"minAmount" validate:"gte=0"`
	MaxAmount *float64 `json:"maxAmount" validate:"omitempty,gtefield=MinAmount"`
	SplitRate float64  `json:"splitRate" validate:"gte=0,lte=1"`
}

// CustomDeductionDTO mirrors one deduction in create/update payloads.
type CustomDeductionDTO struct {
	Name       string  `json:"name" validate:"required,max=120"`
	Type       string  `json:"type" validate:"required,oneof=flat percentage"`
	Value      float64 `json:"value" validate:"gte=0"`
	ApplyOrder int     `json:"applyOrder" validate:"gte=0"`
}

// SaveLeadSourceRequest serves both POST and PUT. Child collections
// replace the stored ones wholesale.
type SaveLeadSourceRequest struct {
	Name   string `json:"name" validate:"required,max=120"`
	Active *bool  `json:"active"`

	PayoutStructure      string  `json:"payoutStructure" validate:"omitempty,oneof=standard partnership tiered"`
	BrokerageSplitRate   float64 `json:"brokerageSplitRate" validate:"gte=0,lte=1"`
	PartnershipSplitRate float64 `json:"partnershipSplitRate" validate:"gte=0,lte=1"`

	DefaultGrossCommissionRate float64 `json:"defaultGrossCommissionRate" validate:"gte=0,lte=1"`
	DefaultReferralOutRate     float64 `json:"defaultReferralOutRate" validate:"gte=0,lte=1"`
	DefaultReferralInRate      float64 `json:"defaultReferralInRate" validate:"gte=0,lte=1"`
	DefaultTransactionFee      float64 `json:"defaultTransactionFee" validate:"gte=0"`

	TieredSplits []TieredSplitDTO     `json:"tieredSplits" validate:"dive"`
	Deductions   []CustomDeductionDTO `json:"deductions" validate:"dive"`
}
