package workspace

import (
	"github.com/closetrack/api-crm/internal/pipelinestatus"
	"gorm.io/gorm"
)

// Repository encapsulates workspace persistence.
type Repository struct {
	DB       *gorm.DB
	Statuses *pipelinestatus.Repository
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db, Statuses: pipelinestatus.NewRepository(db)}
}

// Create inserts the workspace, its owner's admin membership and the
// default pipeline statuses in one transaction.
func (r *Repository) Create(ws *Workspace) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ws).Error; err != nil {
			return err
		}
		member := Membership{WorkspaceID: ws.ID, UserID: ws.OwnerID, Role: RoleAdmin}
		if err := tx.Create(&member).Error; err != nil {
			return err
		}
		return r.Statuses.Seed(tx, ws.ID)
	})
}

func (r *Repository) FindByID(id uint) (*Workspace, error) {
	var ws Workspace
	if err := r.DB.Preload("Members").First(&ws, id).Error; err != nil {
		return nil, err
	}
	return &ws, nil
}

// ListForUser returns the workspaces the user is a member of.
func (r *Repository) ListForUser(userID uint) ([]Workspace, error) {
	var list []Workspace
	err := r.DB.
		Joins("JOIN memberships ON memberships.workspace_id = workspaces.id").
		Where("memberships.user_id = ?", userID).
		Find(&list).Error
	return list, err
}

func (r *Repository) Update(ws *Workspace) error {
	return r.DB.Save(ws).Error
}

// RoleOf returns the user's role in the workspace, or "" for non-members.
func (r *Repository) RoleOf(workspaceID, userID uint) string {
	var m Membership
	err := r.DB.Where("workspace_id = ? AND user_id = ?", workspaceID, userID).First(&m).Error
	if err != nil {
		return ""
	}
	return m.Role
}

func (r *Repository) AddMember(m *Membership) error {
	return r.DB.Create(m).Error
}

func (r *Repository) ListMembers(workspaceID uint) ([]Membership, error) {
	var list []Membership
	err := r.DB.Where("workspace_id = ?", workspaceID).Find(&list).Error
	return list, err
}

func (r *Repository) RemoveMember(workspaceID, userID uint) error {
	return r.DB.
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		Delete(&Membership{}).Error
}
