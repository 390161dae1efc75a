package leadsource

import (
	"strings"

	"gorm.io/gorm"
)

// Repository encapsulates lead source persistence.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Create inserts a source with its child rows in one transaction.
func (r *Repository) Create(ls *LeadSource) error {
	return r.DB.Create(ls).Error
}

func (r *Repository) FindByID(workspaceID, id uint) (*LeadSource, error) {
	var ls LeadSource
	err := r.DB.
		Preload("TieredSplits").
		Preload("Deductions").
		Where("workspace_id = ?", workspaceID).
		First(&ls, id).Error
	if err != nil {
		return nil, err
	}
	return &ls, nil
}

func (r *Repository) ListByWorkspace(workspaceID uint) ([]LeadSource, error) {
	var list []LeadSource
	err := r.DB.
		Preload("TieredSplits").
		Preload("Deductions").
		Where("workspace_id = ?", workspaceID).
		Order("name").
		Find(&list).Error
	return list, err
}

// NameIndex returns lower-cased name -> ID for every active source in
// the workspace, the shape the CSV importer consumes.
func (r *Repository) NameIndex(workspaceID uint) (map[string]uint, error) {
	var list []LeadSource
	err := r.DB.
		Select("id", "name").
		Where("workspace_id = ? AND active = ?", workspaceID, true).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	idx := make(map[string]uint, len(list))
	for _, ls := range list {
		idx[strings.ToLower(strings.TrimSpace(ls.Name))] = ls.ID
	}
	return idx, nil
}

// Update saves the scalar fields and replaces both child collections in
// a single transaction, so a half-applied tier table can never be read.
func (r *Repository) Update(ls *LeadSource, tiers []TieredSplit, deductions []CustomDeduction) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(ls).Error; err != nil {
			return err
		}
		if err := tx.Where("lead_source_id = ?", ls.ID).Delete(&TieredSplit{}).Error; err != nil {
			return err
		}
		if err := tx.Where("lead_source_id = ?", ls.ID).Delete(&CustomDeduction{}).Error; err != nil {
			return err
		}
		for i := range tiers {
			tiers[i].ID = 0
			tiers[i].LeadSourceID = ls.ID
		}
		if len(tiers) > 0 {
			if err := tx.Create(&tiers).Error; err != nil {
				return err
			}
		}
		for i := range deductions {
			deductions[i].ID = 0
			deductions[i].LeadSourceID = ls.ID
		}
		if len(deductions) > 0 {
			if err := tx.Create(&deductions).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repository) Delete(ls *LeadSource) error {
	return r.DB.Delete(ls).Error
}
