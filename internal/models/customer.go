package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a registered account that owns borewell records.
type Customer struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`
	Email        string    `gorm:"type:varchar(320);uniqueIndex;not null" json:"email"`
	PhoneNumber  string    `gorm:"type:varchar(16);uniqueIndex;not null" json:"phoneNumber"`
	Address      string    `gorm:"type:varchar(200);not null" json:"address"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// Password holds a raw secret between request decoding and persistence.
	// It is never stored or serialized.
	Password string `gorm:"-" json:"-"`
}
