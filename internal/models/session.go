package models

import (
	"time"

	"github.com/google/uuid"
)

// Session binds an opaque client-held token to a user. Only the SHA-256
// digest of the token is stored; logout revokes the row server-side so a
// stolen cookie stops working the moment the user logs out.
type Session struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	TokenHash string    `gorm:"uniqueIndex;not null;size:64" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Revoked   bool      `gorm:"default:false" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
}
