package user

import "gorm.io/gorm"

// User is an account that can sign in: an agent or an administrator.
type User struct {
	gorm.Model
	FirstName          string `gorm:"size:100" json:"firstName"`
	LastName           string `gorm:"size:100" json:"lastName"`
	Email              string `gorm:"size:200;uniqueIndex;not null" json:"email"`
	Phone              string `gorm:"size:40" json:"phone"`
	Photo              string `gorm:"size:255" json:"photo"`
	PasswordHash       string `gorm:"size:255;not null" json:"-"`
	NeedsPasswordReset bool   `gorm:"not null;default:false" json:"-"`
	IsAdmin            bool   `gorm:"not null;default:false" json:"isAdmin"`
}

// Migrate creates the users table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{})
}
