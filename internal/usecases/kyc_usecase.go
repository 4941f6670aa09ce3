package usecases

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"kyc-onboard.backend/internal/domain/entities"
	domainerrors "kyc-onboard.backend/internal/domain/errors"
	"kyc-onboard.backend/internal/domain/repositories"
	"kyc-onboard.backend/internal/infrastructure/storage"
	"kyc-onboard.backend/internal/metrics"
)

// SubmissionResult describes an accepted document upload
type SubmissionResult struct {
	Filename    string
	DocumentURL string
}

// VerificationResult reports an applied (or idempotently re-applied)
// admin decision
type VerificationResult struct {
	Message string
	UserID  uuid.UUID
}

// KYCUsecase governs the kyc_status state machine:
// PENDING → REVIEWING → {APPROVED, REJECTED}, REJECTED → REVIEWING on
// re-upload, APPROVED terminal for uploads.
type KYCUsecase struct {
	userRepo repositories.UserRepository
	docStore *storage.DocumentStore
}

// NewKYCUsecase creates a new KYC usecase
func NewKYCUsecase(userRepo repositories.UserRepository, docStore *storage.DocumentStore) *KYCUsecase {
	return &KYCUsecase{
		userRepo: userRepo,
		docStore: docStore,
	}
}

// SubmitDocument stores an identity document for the calling user and moves
// them to REVIEWING. The approval check runs before anything touches disk,
// so a blocked submission leaves both state and storage unchanged.
func (u *KYCUsecase) SubmitDocument(ctx context.Context, user *entities.User, src io.Reader, originalName string) (*SubmissionResult, error) {
	if user.KYCStatus == entities.KYCApproved {
		metrics.SubmissionsTotal.WithLabelValues("blocked").Inc()
		return nil, domainerrors.ErrAlreadyApproved
	}

	doc, err := u.docStore.Store(user.ID, src, originalName)
	if err != nil {
		if err == domainerrors.ErrUnsupportedFileType {
			metrics.SubmissionsTotal.WithLabelValues("rejected_type").Inc()
		} else {
			metrics.SubmissionsTotal.WithLabelValues("failed").Inc()
		}
		return nil, err
	}

	if err := u.userRepo.UpdateKYCSubmission(ctx, user.ID, doc.Reference, time.Now().UTC()); err != nil {
		metrics.SubmissionsTotal.WithLabelValues("failed").Inc()
		return nil, err
	}

	metrics.SubmissionsTotal.WithLabelValues("accepted").Inc()
	return &SubmissionResult{
		Filename:    doc.Filename,
		DocumentURL: doc.Reference,
	}, nil
}

// Verify applies an admin decision to a non-admin target. A decision that
// leaves the record unchanged still succeeds; only the message text
// differs (idempotent-success policy).
func (u *KYCUsecase) Verify(ctx context.Context, admin *entities.User, targetID uuid.UUID, status entities.KYCStatus) (*VerificationResult, error) {
	if !status.Decision() {
		return nil, domainerrors.ErrInvalidStatus
	}

	target, err := u.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, domainerrors.ErrNotFound
	}
	if target.IsAdmin {
		return nil, domainerrors.ErrNotFound
	}

	modified, err := u.userRepo.UpdateKYCVerification(ctx, target.ID, status, admin.ID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if !modified {
		return &VerificationResult{
			Message: "User found, but KYC status not modified (perhaps already set).",
			UserID:  target.ID,
		}, nil
	}

	metrics.DecisionsTotal.WithLabelValues(string(status)).Inc()
	return &VerificationResult{
		Message: fmt.Sprintf("KYC for user %s updated to %s.", target.Email, status),
		UserID:  target.ID,
	}, nil
}

// ListPendingKYC returns the FIFO review queue of non-admin users in
// PENDING or REVIEWING
func (u *KYCUsecase) ListPendingKYC(ctx context.Context) ([]*entities.User, error) {
	return u.userRepo.ListPendingKYC(ctx)
}

// ListUsers returns all non-admin users, newest registration first
func (u *KYCUsecase) ListUsers(ctx context.Context) ([]*entities.User, error) {
	return u.userRepo.ListNonAdmins(ctx)
}
