package pipelinestatus

import (
	"strings"

	"github.com/closetrack/api-crm/internal/csvimport"
	"gorm.io/gorm"
)

// Repository encapsulates pipeline status persistence.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(ps *PipelineStatus) error {
	return r.DB.Create(ps).Error
}

// Seed inserts the default status set; used when a workspace is created.
func (r *Repository) Seed(tx *gorm.DB, workspaceID uint) error {
	defaults := DefaultSet(workspaceID)
	return tx.Create(&defaults).Error
}

func (r *Repository) ListByWorkspace(workspaceID uint) ([]PipelineStatus, error) {
	var list []PipelineStatus
	err := r.DB.
		Where("workspace_id = ?", workspaceID).
		Order("position").
		Find(&list).Error
	return list, err
}

func (r *Repository) FindByID(workspaceID, id uint) (*PipelineStatus, error) {
	var ps PipelineStatus
	err := r.DB.Where("workspace_id = ?", workspaceID).First(&ps, id).Error
	if err != nil {
		return nil, err
	}
	return &ps, nil
}

// NameIndex returns lower-cased name -> reference for the importer's
// case-insensitive status check.
func (r *Repository) NameIndex(workspaceID uint) (map[string]csvimport.StatusRef, error) {
	list, err := r.ListByWorkspace(workspaceID)
	if err != nil {
		return nil, err
	}
	idx := make(map[string]csvimport.StatusRef, len(list))
	for _, ps := range list {
		idx[strings.ToLower(strings.TrimSpace(ps.Name))] = csvimport.StatusRef{
			ID:             ps.ID,
			LifecycleStage: ps.LifecycleStage,
		}
	}
	return idx, nil
}

func (r *Repository) Update(ps *PipelineStatus) error {
	return r.DB.Save(ps).Error
}

func (r *Repository) Delete(ps *PipelineStatus) error {
	return r.DB.Delete(ps).Error
}
