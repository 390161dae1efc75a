package leadsource

import (
	"time"

	"gorm.io/gorm"
)

// LeadSource is a workspace's named deal origin together with its payout
// configuration. The structure field decides which of the config blocks
// the commission engine consults; the others are ignored even when set.
type LeadSource struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	WorkspaceID uint   `gorm:"not null;index" json:"workspaceId"`
	Name        string `gorm:"size:120;not null" json:"name"`
	Active      bool   `gorm:"not null;default:true" json:"active"`

	PayoutStructure      string  `gorm:"size:20;not null;default:'standard'" json:"payoutStructure"`
	BrokerageSplitRate   float64 `gorm:"not null;default:0" json:"brokerageSplitRate"`
	PartnershipSplitRate float64 `gorm:"not null;default:0" json:"partnershipSplitRate"`

	// Defaults applied when the deal carries no override.
	DefaultGrossCommissionRate float64 `gorm:"not null;default:0" json:"defaultGrossCommissionRate"`
	DefaultReferralOutRate     float64 `gorm:"not null;default:0" json:"defaultReferralOutRate"`
	DefaultReferralInRate      float64 `gorm:"not null;default:0" json:"defaultReferralInRate"`
	DefaultTransactionFee      float64 `gorm:"not null;default:0" json:"defaultTransactionFee"`

	TieredSplits []TieredSplit     `gorm:"foreignKey:LeadSourceID;constraint:OnDelete:CASCADE" json:"tieredSplits"`
	Deductions   []CustomDeduction `gorm:"foreignKey:LeadSourceID;constraint:OnDelete:CASCADE" json:"deductions"`
}

// TieredSplit is one sale-price bracket. A nil MaxAmount leaves the
// bracket open at the top.
type TieredSplit struct {
	ID           uint     `gorm:"primaryKey" json:"id"`
	LeadSourceID uint     `gorm:"not null;index" json:"leadSourceId"`
	MinAmount    float64  `gorm:"not null;default:0" json:"minAmount"`
	MaxAmount    *float64 `json:"maxAmount"`
	SplitRate    float64  `gorm:"not null;default:0" json:"splitRate"`
}

// CustomDeduction is a named fee applied after the transaction fee, in
// ascending ApplyOrder.
type CustomDeduction struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	LeadSourceID uint    `gorm:"not null;index" json:"leadSourceId"`
	Name         string  `gorm:"size:120;not null" json:"name"`
	Type         string  `gorm:"size:20;not null;default:'flat'" json:"type"`
	Value        float64 `gorm:"not null;default:0" json:"value"`
	ApplyOrder   int     `gorm:"not null;default:0" json:"applyOrder"`
}

// Migrate creates the lead source tables and relationships.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&LeadSource{}, &TieredSplit{}, &CustomDeduction{})
}
