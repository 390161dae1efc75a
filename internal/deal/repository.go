package deal

import (
	"time"

	"github.com/closetrack/api-crm/internal/pipelinestatus"
	"gorm.io/gorm"
)

// Repository encapsulates deal persistence.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(d *Deal) error {
	return r.DB.Create(d).Error
}

// CreateBatch inserts imported deals in one transaction together with
// the import run record, so a run is either fully applied or not at all.
func (r *Repository) CreateBatch(deals []*Deal, run *ImportRun) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if len(deals) > 0 {
			if err := tx.Create(&deals).Error; err != nil {
				return err
			}
		}
		return tx.Create(run).Error
	})
}

func (r *Repository) FindByID(workspaceID, id uint) (*Deal, error) {
	var d Deal
	err := r.DB.
		Preload("LeadSource.TieredSplits").
		Preload("LeadSource.Deductions").
		Preload("PipelineStatus").
		Preload("Notes").
		Where("workspace_id = ?", workspaceID).
		First(&d, id).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListByWorkspace returns a workspace's deals, optionally filtered by
// pipeline status and agent.
func (r *Repository) ListByWorkspace(workspaceID uint, statusID, agentID uint) ([]Deal, error) {
	q := r.DB.
		Preload("LeadSource").
		Preload("PipelineStatus").
		Where("workspace_id = ?", workspaceID)
	if statusID != 0 {
		q = q.Where("pipeline_status_id = ?", statusID)
	}
	if agentID != 0 {
		q = q.Where("agent_id = ?", agentID)
	}

	var list []Deal
	err := q.Order("created_at DESC").Find(&list).Error
	return list, err
}

// ListForReporting loads deals with the payout associations analytics
// needs to price each one.
func (r *Repository) ListForReporting(workspaceID uint) ([]Deal, error) {
	var list []Deal
	err := r.DB.
		Preload("LeadSource.TieredSplits").
		Preload("LeadSource.Deductions").
		Preload("PipelineStatus").
		Where("workspace_id = ?", workspaceID).
		Find(&list).Error
	return list, err
}

func (r *Repository) Update(d *Deal) error {
	return r.DB.Save(d).Error
}

// StampClosed sets closed_at when a deal first enters a closed status.
func (r *Repository) StampClosed(d *Deal) error {
	now := time.Now().UTC()
	d.ClosedAt = &now
	return r.DB.Model(d).Update("closed_at", d.ClosedAt).Error
}

func (r *Repository) Delete(d *Deal) error {
	return r.DB.Delete(d).Error
}

// CountByClientName reports how many live deals in the workspace share
// the client name, for the duplicate-client alert.
func (r *Repository) CountByClientName(workspaceID uint, clientName string) (int64, error) {
	var n int64
	err := r.DB.Model(&Deal{}).
		Where("workspace_id = ? AND LOWER(client_name) = LOWER(?)", workspaceID, clientName).
		Count(&n).Error
	return n, err
}

// FindRun returns an import run by its public token.
func (r *Repository) FindRun(workspaceID uint, token string) (*ImportRun, error) {
	var run ImportRun
	err := r.DB.Where("workspace_id = ? AND token = ?", workspaceID, token).First(&run).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// statusIsClosed reports whether the given status id maps to the closed
// lifecycle stage.
func (r *Repository) statusIsClosed(workspaceID uint, statusID *uint) bool {
	if statusID == nil {
		return false
	}
	var ps pipelinestatus.PipelineStatus
	if err := r.DB.Where("workspace_id = ?", workspaceID).First(&ps, *statusID).Error; err != nil {
		return false
	}
	return ps.LifecycleStage == pipelinestatus.StageClosed
}
