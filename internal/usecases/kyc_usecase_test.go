package usecases_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"kyc-onboard.backend/internal/domain/entities"
	domainerrors "kyc-onboard.backend/internal/domain/errors"
	"kyc-onboard.backend/internal/infrastructure/storage"
	"kyc-onboard.backend/internal/usecases"
)

func newKYCUsecaseForTest(t *testing.T, userRepo *MockUserRepository) *usecases.KYCUsecase {
	t.Helper()
	docStore, err := storage.NewDocumentStore(t.TempDir(), []string{"jpg"})
	require.NoError(t, err)
	return usecases.NewKYCUsecase(userRepo, docStore)
}

func TestKYCUsecase_SubmitDocument(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newKYCUsecaseForTest(t, userRepo)

	user := &entities.User{ID: uuid.New(), KYCStatus: entities.KYCPending}
	userRepo.On("UpdateKYCSubmission", context.Background(), user.ID, mock.Anything, mock.Anything).Return(nil).Once()

	res, err := uc.SubmitDocument(context.Background(), user, strings.NewReader("bytes"), "passport.jpg")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.DocumentURL, "/uploads/"))
	assert.Contains(t, res.Filename, user.ID.String())
	userRepo.AssertExpectations(t)
}

func TestKYCUsecase_SubmitDocument_ResubmitAfterRejection(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newKYCUsecaseForTest(t, userRepo)

	user := &entities.User{ID: uuid.New(), KYCStatus: entities.KYCRejected}
	userRepo.On("UpdateKYCSubmission", context.Background(), user.ID, mock.Anything, mock.Anything).Return(nil).Once()

	_, err := uc.SubmitDocument(context.Background(), user, strings.NewReader("bytes"), "retry.jpg")
	assert.NoError(t, err)
}

func TestKYCUsecase_SubmitDocument_BlockedWhenApproved(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newKYCUsecaseForTest(t, userRepo)

	user := &entities.User{ID: uuid.New(), KYCStatus: entities.KYCApproved}

	_, err := uc.SubmitDocument(context.Background(), user, strings.NewReader("bytes"), "late.jpg")
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyApproved)
	// no store call reaches the repository
	userRepo.AssertNotCalled(t, "UpdateKYCSubmission", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestKYCUsecase_SubmitDocument_BadExtension(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newKYCUsecaseForTest(t, userRepo)

	user := &entities.User{ID: uuid.New(), KYCStatus: entities.KYCPending}

	_, err := uc.SubmitDocument(context.Background(), user, strings.NewReader("bytes"), "doc.pdf")
	assert.ErrorIs(t, err, domainerrors.ErrUnsupportedFileType)
	userRepo.AssertNotCalled(t, "UpdateKYCSubmission", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestKYCUsecase_Verify(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newKYCUsecaseForTest(t, userRepo)

	admin := &entities.User{ID: uuid.New(), IsAdmin: true}
	target := &entities.User{ID: uuid.New(), Email: "t@x.com", KYCStatus: entities.KYCReviewing}

	userRepo.On("GetByID", context.Background(), target.ID).Return(target, nil).Once()
	userRepo.On("UpdateKYCVerification", context.Background(), target.ID, entities.KYCApproved, admin.ID, mock.Anything).
		Return(true, nil).Once()

	res, err := uc.Verify(context.Background(), admin, target.ID, entities.KYCApproved)
	require.NoError(t, err)
	assert.Equal(t, "KYC for user t@x.com updated to APPROVED.", res.Message)
	assert.Equal(t, target.ID, res.UserID)
}

func TestKYCUsecase_Verify_IdempotentSuccess(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newKYCUsecaseForTest(t, userRepo)

	admin := &entities.User{ID: uuid.New(), IsAdmin: true}
	target := &entities.User{ID: uuid.New(), Email: "t@x.com", KYCStatus: entities.KYCApproved}

	userRepo.On("GetByID", context.Background(), target.ID).Return(target, nil).Once()
	userRepo.On("UpdateKYCVerification", context.Background(), target.ID, entities.KYCApproved, admin.ID, mock.Anything).
		Return(false, nil).Once()

	res, err := uc.Verify(context.Background(), admin, target.ID, entities.KYCApproved)
	require.NoError(t, err)
	assert.Equal(t, "User found, but KYC status not modified (perhaps already set).", res.Message)
}

func TestKYCUsecase_Verify_InvalidStatus(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newKYCUsecaseForTest(t, userRepo)

	admin := &entities.User{ID: uuid.New(), IsAdmin: true}

	for _, status := range []entities.KYCStatus{entities.KYCPending, entities.KYCReviewing, "BOGUS"} {
		_, err := uc.Verify(context.Background(), admin, uuid.New(), status)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidStatus, "status=%s", status)
	}
}

func TestKYCUsecase_Verify_TargetMissingOrAdmin(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newKYCUsecaseForTest(t, userRepo)

	admin := &entities.User{ID: uuid.New(), IsAdmin: true}

	missing := uuid.New()
	userRepo.On("GetByID", context.Background(), missing).Return(nil, domainerrors.ErrNotFound).Once()
	_, err := uc.Verify(context.Background(), admin, missing, entities.KYCApproved)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	otherAdmin := &entities.User{ID: uuid.New(), IsAdmin: true}
	userRepo.On("GetByID", context.Background(), otherAdmin.ID).Return(otherAdmin, nil).Once()
	_, err = uc.Verify(context.Background(), admin, otherAdmin.ID, entities.KYCRejected)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestKYCUsecase_Listings(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newKYCUsecaseForTest(t, userRepo)

	pending := []*entities.User{{ID: uuid.New(), KYCStatus: entities.KYCReviewing}}
	all := []*entities.User{{ID: uuid.New()}, {ID: uuid.New()}}
	userRepo.On("ListPendingKYC", context.Background()).Return(pending, nil).Once()
	userRepo.On("ListNonAdmins", context.Background()).Return(all, nil).Once()

	got, err := uc.ListPendingKYC(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = uc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
