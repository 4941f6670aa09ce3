package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// KYCStatus represents a user's position in the review workflow
type KYCStatus string

const (
	KYCPending   KYCStatus = "PENDING"
	KYCReviewing KYCStatus = "REVIEWING"
	KYCApproved  KYCStatus = "APPROVED"
	KYCRejected  KYCStatus = "REJECTED"
)

// Valid reports whether s is one of the known statuses
func (s KYCStatus) Valid() bool {
	switch s {
	case KYCPending, KYCReviewing, KYCApproved, KYCRejected:
		return true
	}
	return false
}

// Decision reports whether s is a status an admin may assign
func (s KYCStatus) Decision() bool {
	return s == KYCApproved || s == KYCRejected
}

// User represents a registrant
type User struct {
	ID                   uuid.UUID   `json:"id"`
	Name                 string      `json:"name"`
	Email                string      `json:"email"`
	PasswordHash         string      `json:"-"`
	IsAdmin              bool        `json:"is_admin"`
	KYCStatus            KYCStatus   `json:"kyc_status"`
	KYCDocument          null.String `json:"kyc_document,omitempty"`
	KYCSubmittedAt       null.Time   `json:"kyc_submitted_at,omitempty"`
	KYCVerifiedByAdminID null.String `json:"-"`
	KYCVerificationDate  null.Time   `json:"-"`
	CreatedAt            time.Time   `json:"created_at"`
}

// RegisterInput represents input for user registration
type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginInput represents input for user login
type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// VerifyKYCInput carries an admin's review decision
type VerifyKYCInput struct {
	Status string `json:"status" binding:"required"`
}
