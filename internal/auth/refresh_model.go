package auth

import (
	"time"

	"gorm.io/gorm"
)

// RefreshToken is one member of a rotating refresh family. Only the
// SHA-256 hash of the raw token is stored.
type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index"`
	FamilyID  string `gorm:"size:36;index"`
	Hash      string `gorm:"uniqueIndex"`
	IsAdmin   bool
	ExpiresAt time.Time `gorm:"index"`
	RevokedAt *time.Time
	CreatedAt time.Time
}

// Migrate creates the refresh token table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&RefreshToken{})
}
