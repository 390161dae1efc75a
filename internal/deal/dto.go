package deal

// SaveDealRequest serves both POST and PUT for deals.
type SaveDealRequest struct {
	AgentID uint `json:"agentId"`

	ClientName  string `json:"clientName" validate:"required,max=200"`
	ClientPhone string `json:"clientPhone" validate:"max=40"`
	ClientEmail string `json:"clientEmail" validate:"omitempty,email"`

	PropertyAddress string `json:"propertyAddress" validate:"max=255"`
	City            string `json:"city" validate:"max=120"`
	State           string `json:"state" validate:"max=40"`
	Zip             string `json:"zip" validate:"max=20"`

	DealType string `json:"dealType" validate:"required,oneof=buyer seller buyer_and_seller renter landlord"`

	LeadSourceID     *uint `json:"leadSourceId"`
	PipelineStatusID *uint `json:"pipelineStatusId"`

	ExpectedSalePrice   float64  `json:"expectedSalePrice" validate:"gte=0"`
	ActualSalePrice     float64  `json:"actualSalePrice" validate:"gte=0"`
	GrossCommissionRate float64  `json:"grossCommissionRate" validate:"gte=0,lte=1"`
	BrokerageSplitRate  *float64 `json:"brokerageSplitRate" validate:"omitempty,gte=0,lte=1"`
	ReferralOutRate     *float64 `json:"referralOutRate" validate:"omitempty,gte=0,lte=1"`
	ReferralInRate      *float64 `json:"referralInRate" validate:"omitempty,gte=0,lte=1"`
	TransactionFee      *float64 `json:"transactionFee" validate:"omitempty,gte=0"`

	// CloseDate accepts any format the flexible date parser recognizes;
	// it is stored normalized to ISO.
	CloseDate string `json:"closeDate"`
}
