package usecases_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"kyc-onboard.backend/internal/domain/entities"
)

// MockUserRepository is a testify mock of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) UpdateKYCSubmission(ctx context.Context, id uuid.UUID, documentRef string, submittedAt time.Time) error {
	return m.Called(ctx, id, documentRef, submittedAt).Error(0)
}

func (m *MockUserRepository) UpdateKYCVerification(ctx context.Context, id uuid.UUID, status entities.KYCStatus, adminID uuid.UUID, when time.Time) (bool, error) {
	args := m.Called(ctx, id, status, adminID, when)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ListPendingKYC(ctx context.Context) ([]*entities.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *MockUserRepository) ListNonAdmins(ctx context.Context) ([]*entities.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}
