package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"kyc-onboard.backend/internal/domain/entities"
)

// UserRepository defines credential-store operations. Implementations must
// enforce email uniqueness at the storage layer; the application-level
// pre-check alone is racy under concurrent registration.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)

	// UpdateKYCSubmission records a document upload: sets the document
	// reference, moves the status to REVIEWING and stamps the submission time.
	UpdateKYCSubmission(ctx context.Context, id uuid.UUID, documentRef string, submittedAt time.Time) error

	// UpdateKYCVerification applies an admin decision. The returned bool
	// reports whether the stored record changed; callers treat an unchanged
	// record as success (idempotent-success policy).
	UpdateKYCVerification(ctx context.Context, id uuid.UUID, status entities.KYCStatus, adminID uuid.UUID, when time.Time) (bool, error)

	// ListPendingKYC returns non-admin users awaiting review (PENDING or
	// REVIEWING), oldest submission first.
	ListPendingKYC(ctx context.Context) ([]*entities.User, error)

	// ListNonAdmins returns all non-admin users, newest registration first.
	ListNonAdmins(ctx context.Context) ([]*entities.User, error)
}
