package workspace

import (
	"time"

	"gorm.io/gorm"
)

// Membership roles within a workspace.
const (
	RoleAdmin = "admin"
	RoleAgent = "agent"
)

// Workspace is the tenancy boundary: every deal, lead source and
// pipeline status belongs to exactly one.
type Workspace struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	Name    string `gorm:"size:200;not null" json:"name"`
	OwnerID uint   `gorm:"not null;index" json:"ownerId"`

	Members []Membership `gorm:"foreignKey:WorkspaceID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
}

// Membership links a user to a workspace with a role.
type Membership struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	WorkspaceID uint   `gorm:"not null;index:idx_member,unique" json:"workspaceId"`
	UserID      uint   `gorm:"not null;index:idx_member,unique" json:"userId"`
	Role        string `gorm:"size:20;not null;default:'agent'" json:"role"`
}

// Migrate creates the workspace tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Workspace{}, &Membership{})
}
