package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"kyc-onboard.backend/internal/domain/entities"
	domainerrors "kyc-onboard.backend/internal/domain/errors"
	"kyc-onboard.backend/internal/interfaces/http/middleware"
	"kyc-onboard.backend/internal/interfaces/http/response"
	"kyc-onboard.backend/internal/usecases"
)

// AdminHandler handles the review endpoints. All routes behind
// AuthMiddleware + RequireAdmin.
type AdminHandler struct {
	kycUsecase *usecases.KYCUsecase
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(kycUsecase *usecases.KYCUsecase) *AdminHandler {
	return &AdminHandler{
		kycUsecase: kycUsecase,
	}
}

// PendingKYC returns the FIFO review queue
// GET /api/admin/pending_kyc
func (h *AdminHandler) PendingKYC(c *gin.Context) {
	users, err := h.kycUsecase.ListPendingKYC(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	result := make([]gin.H, 0, len(users))
	for _, u := range users {
		result = append(result, gin.H{
			"user_id":       u.ID,
			"name":          u.Name,
			"email":         u.Email,
			"status":        u.KYCStatus,
			"document_link": stringOrNA(u.KYCDocument.Valid, u.KYCDocument.String),
			"submitted_at":  timeOrNA(u.KYCSubmittedAt.Valid, u.KYCSubmittedAt.Time),
		})
	}
	response.Success(c, http.StatusOK, result)
}

// ListUsers returns all non-admin users, newest first
// GET /api/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.kycUsecase.ListUsers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	result := make([]gin.H, 0, len(users))
	for _, u := range users {
		result = append(result, gin.H{
			"user_id":       u.ID,
			"name":          u.Name,
			"email":         u.Email,
			"status":        u.KYCStatus,
			"document_link": stringOrNA(u.KYCDocument.Valid, u.KYCDocument.String),
			"joined_at":     timeOrNA(true, u.CreatedAt),
		})
	}
	response.Success(c, http.StatusOK, result)
}

// VerifyKYC applies an admin decision to a target user
// PATCH /api/admin/verify_kyc/:user_id
func (h *AdminHandler) VerifyKYC(c *gin.Context) {
	admin, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Token is missing!"))
		return
	}

	targetID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid user ID format."))
		return
	}

	var input entities.VerifyKYCInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid status. Must be APPROVED or REJECTED."))
		return
	}

	result, err := h.kycUsecase.Verify(c.Request.Context(), admin, targetID, entities.KYCStatus(input.Status))
	if err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrInvalidStatus):
			response.Error(c, domainerrors.BadRequest("Invalid status. Must be APPROVED or REJECTED."))
		case errors.Is(err, domainerrors.ErrNotFound):
			response.Error(c, domainerrors.NotFound("User not found or is an Admin."))
		default:
			response.Error(c, err)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": result.Message,
		"user_id": result.UserID,
	})
}

func stringOrNA(valid bool, s string) string {
	if !valid {
		return "N/A"
	}
	return s
}

func timeOrNA(valid bool, t time.Time) string {
	if !valid || t.IsZero() {
		return "N/A"
	}
	return t.UTC().Format(time.RFC3339)
}
