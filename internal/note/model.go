package note

import "gorm.io/gorm"

// Note is a free-text comment attached to a deal.
type Note struct {
	gorm.Model
	Body     string `gorm:"not null" json:"body"`
	DealID   uint   `gorm:"not null;index" json:"dealId"`
	AuthorID uint   `gorm:"index" json:"authorId"`
}

// Migrate creates the notes table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Note{})
}
