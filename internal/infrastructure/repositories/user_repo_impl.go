package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"kyc-onboard.backend/internal/domain/entities"
	domainerrors "kyc-onboard.backend/internal/domain/errors"
	"kyc-onboard.backend/internal/infrastructure/models"
)

// UserRepository implements credential-store operations on GORM
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user. A violated email constraint maps to
// ErrAlreadyExists rather than bubbling up as a raw driver error.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	m := &models.User{
		ID:                   user.ID,
		Name:                 user.Name,
		Email:                user.Email,
		PasswordHash:         user.PasswordHash,
		IsAdmin:              user.IsAdmin,
		KYCStatus:            string(user.KYCStatus),
		KYCDocument:          user.KYCDocument.Ptr(),
		KYCSubmittedAt:       timePtr(user.KYCSubmittedAt),
		KYCVerifiedByAdminID: user.KYCVerifiedByAdminID.Ptr(),
		KYCVerificationDate:  timePtr(user.KYCVerificationDate),
		CreatedAt:            user.CreatedAt,
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toEntity(&m), nil
}

// GetByEmail gets a user by email (case-sensitive, as stored)
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toEntity(&m), nil
}

// UpdateKYCSubmission records a document upload in a single UPDATE
func (r *UserRepository) UpdateKYCSubmission(ctx context.Context, id uuid.UUID, documentRef string, submittedAt time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"kyc_document":     documentRef,
		"kyc_status":       string(entities.KYCReviewing),
		"kyc_submitted_at": submittedAt,
		"updated_at":       time.Now().UTC(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdateKYCVerification applies an admin decision, stamping the verifier
// and the verification time. Non-admin targets only; the returned bool is
// false when no stored row changed.
func (r *UserRepository) UpdateKYCVerification(ctx context.Context, id uuid.UUID, status entities.KYCStatus, adminID uuid.UUID, when time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND is_admin = ?", id, false).
		Updates(map[string]interface{}{
			"kyc_status":               string(status),
			"kyc_verified_by_admin_id": adminID.String(),
			"kyc_verification_date":    when,
			"updated_at":               time.Now().UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListPendingKYC returns the FIFO review queue
func (r *UserRepository) ListPendingKYC(ctx context.Context) ([]*entities.User, error) {
	var userModels []models.User
	err := r.db.WithContext(ctx).
		Where("is_admin = ? AND kyc_status IN ?", false, []string{string(entities.KYCPending), string(entities.KYCReviewing)}).
		Order("kyc_submitted_at ASC").
		Find(&userModels).Error
	if err != nil {
		return nil, err
	}
	return toEntities(userModels), nil
}

// ListNonAdmins returns all non-admin users, newest first
func (r *UserRepository) ListNonAdmins(ctx context.Context) ([]*entities.User, error) {
	var userModels []models.User
	err := r.db.WithContext(ctx).
		Where("is_admin = ?", false).
		Order("created_at DESC").
		Find(&userModels).Error
	if err != nil {
		return nil, err
	}
	return toEntities(userModels), nil
}

func toEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:                   m.ID,
		Name:                 m.Name,
		Email:                m.Email,
		PasswordHash:         m.PasswordHash,
		IsAdmin:              m.IsAdmin,
		KYCStatus:            entities.KYCStatus(m.KYCStatus),
		KYCDocument:          null.StringFromPtr(m.KYCDocument),
		KYCSubmittedAt:       null.TimeFromPtr(m.KYCSubmittedAt),
		KYCVerifiedByAdminID: null.StringFromPtr(m.KYCVerifiedByAdminID),
		KYCVerificationDate:  null.TimeFromPtr(m.KYCVerificationDate),
		CreatedAt:            m.CreatedAt,
	}
}

func toEntities(userModels []models.User) []*entities.User {
	users := make([]*entities.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, toEntity(&userModels[i]))
	}
	return users
}

func timePtr(t null.Time) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
