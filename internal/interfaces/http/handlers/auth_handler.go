package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"kyc-onboard.backend/internal/domain/entities"
	domainerrors "kyc-onboard.backend/internal/domain/errors"
	"kyc-onboard.backend/internal/interfaces/http/middleware"
	"kyc-onboard.backend/internal/interfaces/http/response"
	"kyc-onboard.backend/internal/usecases"
)

// AuthHandler handles registration, login and profile endpoints
type AuthHandler struct {
	authUsecase *usecases.AuthUsecase
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase *usecases.AuthUsecase) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
	}
}

// Register handles user registration
// POST /api/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input entities.RegisterInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Missing email, name, or password"))
		return
	}

	user, err := h.authUsecase.Register(c.Request.Context(), &input)
	if err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			response.Error(c, domainerrors.Conflict("User already exists with that email"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Registration successful. Please login and complete KYC.",
		"user_id": user.ID,
	})
}

// Login handles user login. Unknown email and wrong password produce the
// same response.
// POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Unauthorized("Could not verify"))
		return
	}

	token, user, err := h.authUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidCredentials) {
			response.Error(c, domainerrors.Unauthorized("Could not verify"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message":    "Login successful",
		"token":      token,
		"user_id":    user.ID,
		"is_admin":   user.IsAdmin,
		"kyc_status": user.KYCStatus,
	})
}

// Profile returns the sanitized record of the calling user
// GET /api/profile
func (h *AuthHandler) Profile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Token is missing!"))
		return
	}

	document := "Not Uploaded"
	if user.KYCDocument.Valid {
		document = user.KYCDocument.String
	}

	response.Success(c, http.StatusOK, gin.H{
		"user_id":      user.ID,
		"name":         user.Name,
		"email":        user.Email,
		"kyc_status":   user.KYCStatus,
		"kyc_document": document,
		"is_admin":     user.IsAdmin,
	})
}
