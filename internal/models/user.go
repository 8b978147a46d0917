package models

import (
	"time"

	"gorm.io/gorm"
)

// User is the canonical identity record. A row may carry a password hash,
// linked federated provider identifiers, or both. Uniqueness holds per email
// and per provider identifier; the partial unique indexes ignore NULLs so
// federated-only accounts without an email are allowed.
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"size:255;not null" json:"username"`
	Email        *string        `gorm:"size:255;uniqueIndex" json:"email,omitempty"`
	PasswordHash *string        `gorm:"size:100" json:"-"`
	GoogleID     *string        `gorm:"size:255;uniqueIndex" json:"-"`
	FacebookID   *string        `gorm:"size:255;uniqueIndex" json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
