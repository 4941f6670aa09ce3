package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainerrors "kyc-onboard.backend/internal/domain/errors"
	"kyc-onboard.backend/internal/interfaces/http/middleware"
	"kyc-onboard.backend/internal/interfaces/http/response"
	"kyc-onboard.backend/internal/usecases"
	"kyc-onboard.backend/pkg/logger"
)

// kycFileField is the multipart form field carrying the document
const kycFileField = "kyc_file"

// KYCHandler handles document submission
type KYCHandler struct {
	kycUsecase *usecases.KYCUsecase
}

// NewKYCHandler creates a new KYC handler
func NewKYCHandler(kycUsecase *usecases.KYCUsecase) *KYCHandler {
	return &KYCHandler{
		kycUsecase: kycUsecase,
	}
}

// UploadKYC handles document submission by the calling user
// POST /api/upload_kyc
func (h *KYCHandler) UploadKYC(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Token is missing!"))
		return
	}

	fileHeader, err := c.FormFile(kycFileField)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("No file part in the request"))
		return
	}
	if fileHeader.Filename == "" {
		response.Error(c, domainerrors.BadRequest("No selected file"))
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		response.Error(c, domainerrors.BadRequest("No selected file"))
		return
	}
	defer src.Close()

	result, err := h.kycUsecase.SubmitDocument(c.Request.Context(), user, src, fileHeader.Filename)
	if err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrAlreadyApproved):
			response.Error(c, domainerrors.StateConflict("KYC already approved. Re-submission not allowed."))
		case errors.Is(err, domainerrors.ErrUnsupportedFileType):
			response.Error(c, domainerrors.BadRequest("Invalid file type. Only JPG is allowed."))
		case errors.Is(err, domainerrors.ErrStorageFailure):
			logger.Error(c.Request.Context(), "kyc document store failed", zap.Error(err))
			response.Error(c, domainerrors.InternalError(err))
		default:
			response.Error(c, err)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message":      "KYC document submitted successfully. Status updated to REVIEWING.",
		"filename":     result.Filename,
		"document_url": result.DocumentURL,
	})
}
