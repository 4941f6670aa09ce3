package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the persistence shape of a registrant. The unique index on email
// is the storage-level uniqueness guarantee; concurrent registrations with
// the same address surface as a constraint violation, never an overwrite.
type User struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name                 string     `gorm:"type:varchar(100);not null"`
	Email                string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash         string     `gorm:"type:varchar(255);not null"`
	IsAdmin              bool       `gorm:"not null;default:false"`
	KYCStatus            string     `gorm:"type:varchar(50);not null;default:'PENDING'"`
	KYCDocument          *string    `gorm:"type:varchar(512)"`
	KYCSubmittedAt       *time.Time `gorm:"type:timestamp"`
	KYCVerifiedByAdminID *string    `gorm:"type:varchar(64)"`
	KYCVerificationDate  *time.Time `gorm:"type:timestamp"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
