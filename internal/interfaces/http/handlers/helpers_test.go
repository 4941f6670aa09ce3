package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"kyc-onboard.backend/internal/domain/entities"
	domainerrors "kyc-onboard.backend/internal/domain/errors"
	"kyc-onboard.backend/internal/infrastructure/storage"
	"kyc-onboard.backend/internal/interfaces/http/middleware"
)

type userRepoStub struct {
	createFn             func(ctx context.Context, user *entities.User) error
	getByIDFn            func(ctx context.Context, id uuid.UUID) (*entities.User, error)
	getByEmailFn         func(ctx context.Context, email string) (*entities.User, error)
	updateSubmissionFn   func(ctx context.Context, id uuid.UUID, documentRef string, submittedAt time.Time) error
	updateVerificationFn func(ctx context.Context, id uuid.UUID, status entities.KYCStatus, adminID uuid.UUID, when time.Time) (bool, error)
	listPendingFn        func(ctx context.Context) ([]*entities.User, error)
	listNonAdminsFn      func(ctx context.Context) ([]*entities.User, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *entities.User) error {
	if s.createFn != nil {
		return s.createFn(ctx, user)
	}
	return nil
}

func (s *userRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	if s.getByEmailFn != nil {
		return s.getByEmailFn(ctx, email)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *userRepoStub) UpdateKYCSubmission(ctx context.Context, id uuid.UUID, documentRef string, submittedAt time.Time) error {
	if s.updateSubmissionFn != nil {
		return s.updateSubmissionFn(ctx, id, documentRef, submittedAt)
	}
	return nil
}

func (s *userRepoStub) UpdateKYCVerification(ctx context.Context, id uuid.UUID, status entities.KYCStatus, adminID uuid.UUID, when time.Time) (bool, error) {
	if s.updateVerificationFn != nil {
		return s.updateVerificationFn(ctx, id, status, adminID, when)
	}
	return true, nil
}

func (s *userRepoStub) ListPendingKYC(ctx context.Context) ([]*entities.User, error) {
	if s.listPendingFn != nil {
		return s.listPendingFn(ctx)
	}
	return nil, nil
}

func (s *userRepoStub) ListNonAdmins(ctx context.Context) ([]*entities.User, error) {
	if s.listNonAdminsFn != nil {
		return s.listNonAdminsFn(ctx)
	}
	return nil, nil
}

// setCurrentUser stands in for AuthMiddleware in handler tests
func setCurrentUser(user *entities.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CurrentUserKey, user)
		c.Next()
	}
}

func newTestDocStore(t *testing.T) *storage.DocumentStore {
	t.Helper()
	store, err := storage.NewDocumentStore(t.TempDir(), []string{"jpg"})
	require.NoError(t, err)
	return store
}
