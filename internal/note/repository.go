package note

import "gorm.io/gorm"

// Repository encapsulates note persistence.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(n *Note) error {
	return r.DB.Create(n).Error
}

func (r *Repository) FindByID(id uint) (*Note, error) {
	var n Note
	if err := r.DB.First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *Repository) ListByDeal(dealID uint) ([]Note, error) {
	var list []Note
	err := r.DB.Where("deal_id = ?", dealID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *Repository) Update(n *Note) error {
	return r.DB.Save(n).Error
}

func (r *Repository) Delete(n *Note) error {
	return r.DB.Delete(n).Error
}
