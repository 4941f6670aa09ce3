package handlers

import (
	"errors"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	domainerrors "kyc-onboard.backend/internal/domain/errors"
	"kyc-onboard.backend/internal/infrastructure/storage"
	"kyc-onboard.backend/internal/interfaces/http/middleware"
	"kyc-onboard.backend/internal/interfaces/http/response"
)

// DocumentHandler serves stored KYC documents. The route sits behind the
// auth guard: only the owning user (the id prefix in the stored name) or
// an admin can fetch a document, and anyone else sees the same 404 as a
// missing file.
type DocumentHandler struct {
	docStore *storage.DocumentStore
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(docStore *storage.DocumentStore) *DocumentHandler {
	return &DocumentHandler{
		docStore: docStore,
	}
}

// ServeDocument streams a stored document back to an authorized caller
// GET /uploads/:filename
func (h *DocumentHandler) ServeDocument(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Token is missing!"))
		return
	}

	filename := c.Param("filename")
	if !user.IsAdmin && !strings.HasPrefix(filename, user.ID.String()+"_") {
		response.Error(c, domainerrors.NotFound("Document not found."))
		return
	}

	f, err := h.docStore.Open(filename)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.NotFound("Document not found."))
			return
		}
		response.Error(c, err)
		return
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		response.Error(c, err)
		return
	}

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.DataFromReader(http.StatusOK, stat.Size(), contentType, f, map[string]string{
		"Content-Disposition": `inline; filename="` + filename + `"`,
	})
}
