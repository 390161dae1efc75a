package deal

import (
	"time"

	"github.com/closetrack/api-crm/internal/csvimport"
	"github.com/closetrack/api-crm/internal/leadsource"
	"github.com/closetrack/api-crm/internal/note"
	"github.com/closetrack/api-crm/internal/pipelinestatus"
	"gorm.io/gorm"
)

// Deal is one client opportunity moving through a workspace's pipeline.
// Rate fields are overrides: nil falls back to the lead source's payout
// configuration when commission is computed.
type Deal struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	WorkspaceID uint `gorm:"not null;index" json:"workspaceId"`
	AgentID     uint `gorm:"index" json:"agentId"`

	ClientName  string `gorm:"size:200;not null" json:"clientName"`
	ClientPhone string `gorm:"size:40" json:"clientPhone"`
	ClientEmail string `gorm:"size:200" json:"clientEmail"`

	PropertyAddress string `gorm:"size:255" json:"propertyAddress"`
	City            string `gorm:"size:120" json:"city"`
	State           string `gorm:"size:40" json:"state"`
	Zip             string `gorm:"size:20" json:"zip"`

	DealType string `gorm:"size:32;not null" json:"dealType"`

	LeadSourceID *uint                  `gorm:"index" json:"leadSourceId"`
	LeadSource   *leadsource.LeadSource `json:"leadSource,omitempty"`

	PipelineStatusID *uint                          `gorm:"index" json:"pipelineStatusId"`
	PipelineStatus   *pipelinestatus.PipelineStatus `json:"pipelineStatus,omitempty"`

	ExpectedSalePrice   float64  `gorm:"not null;default:0" json:"expectedSalePrice"`
	ActualSalePrice     float64  `gorm:"not null;default:0" json:"actualSalePrice"`
	GrossCommissionRate float64  `gorm:"not null;default:0" json:"grossCommissionRate"`
	BrokerageSplitRate  *float64 `json:"brokerageSplitRate"`
	ReferralOutRate     *float64 `json:"referralOutRate"`
	ReferralInRate      *float64 `json:"referralInRate"`
	TransactionFee      *float64 `json:"transactionFee"`

	// CloseDate is the user-entered ISO date; ClosedAt is stamped when
	// the deal moves to a closed status. The explicit date wins for
	// reporting.
	CloseDate string     `gorm:"size:10" json:"closeDate"`
	ClosedAt  *time.Time `json:"closedAt"`

	Notes []note.Note `gorm:"foreignKey:DealID" json:"notes,omitempty"`
}

// Financials maps the deal onto the lead source payout inputs.
func (d *Deal) Financials() leadsource.DealFinancials {
	return leadsource.DealFinancials{
		ExpectedSalePrice:   d.ExpectedSalePrice,
		ActualSalePrice:     d.ActualSalePrice,
		GrossCommissionRate: d.GrossCommissionRate,
		BrokerageSplitRate:  d.BrokerageSplitRate,
		ReferralOutRate:     d.ReferralOutRate,
		ReferralInRate:      d.ReferralInRate,
		TransactionFee:      d.TransactionFee,
	}
}

// ImportRun records one CSV import: its aggregate counts and the per-row
// error report, kept so the result screen can be revisited.
type ImportRun struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	WorkspaceID uint   `gorm:"not null;index" json:"workspaceId"`
	AgentID     uint   `json:"agentId"`
	Token       string `gorm:"size:36;uniqueIndex" json:"token"`

	Success int                  `gorm:"not null;default:0" json:"success"`
	Failed  int                  `gorm:"not null;default:0" json:"failed"`
	Errors  []csvimport.RowError `gorm:"type:jsonb;serializer:json" json:"errors"`
}

// Migrate creates the deal tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Deal{}, &ImportRun{})
}
