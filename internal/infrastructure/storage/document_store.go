package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	domainerrors "kyc-onboard.backend/internal/domain/errors"
)

// timestampLayout keeps submission time readable in the stored name
const timestampLayout = "20060102150405"

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// StoredDocument describes a persisted KYC document
type StoredDocument struct {
	Filename  string
	Reference string
}

// DocumentStore persists uploaded KYC documents under a managed root
// directory. Stored names are {user_id}_{timestamp}_{sanitized_name}, which
// keeps concurrent uploads collision-free and lets an auditor read ownership
// and submission time off the name alone.
type DocumentStore struct {
	root    string
	allowed map[string]struct{}

	now func() time.Time
}

// NewDocumentStore creates the managed root if needed
func NewDocumentStore(root string, allowedExtensions []string) (*DocumentStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload root: %w", err)
	}
	allowed := make(map[string]struct{}, len(allowedExtensions))
	for _, ext := range allowedExtensions {
		allowed[strings.ToLower(strings.TrimPrefix(ext, "."))] = struct{}{}
	}
	return &DocumentStore{root: root, allowed: allowed, now: time.Now}, nil
}

// Store validates, names and persists an uploaded document, returning the
// stored filename and the /uploads reference for it.
func (s *DocumentStore) Store(userID uuid.UUID, src io.Reader, originalName string) (*StoredDocument, error) {
	if !s.allowedFile(originalName) {
		return nil, domainerrors.ErrUnsupportedFileType
	}

	name := fmt.Sprintf("%s_%s_%s", userID, s.now().UTC().Format(timestampLayout), sanitizeFilename(originalName))

	dst, err := os.Create(filepath.Join(s.root, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainerrors.ErrStorageFailure, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return nil, fmt.Errorf("%w: %v", domainerrors.ErrStorageFailure, err)
	}

	return &StoredDocument{
		Filename:  name,
		Reference: "/uploads/" + name,
	}, nil
}

// Open resolves a stored filename back to its bytes, confined to the
// managed root. Names that escape the root resolve to ErrNotFound.
func (s *DocumentStore) Open(name string) (*os.File, error) {
	cleaned := filepath.Clean(name)
	if cleaned != filepath.Base(cleaned) || strings.HasPrefix(cleaned, ".") {
		return nil, domainerrors.ErrNotFound
	}

	f, err := os.Open(filepath.Join(s.root, cleaned))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", domainerrors.ErrStorageFailure, err)
	}
	return f, nil
}

func (s *DocumentStore) allowedFile(name string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "" {
		return false
	}
	_, ok := s.allowed[ext]
	return ok
}

// sanitizeFilename strips path components and rewrites characters outside
// [A-Za-z0-9._-], so the derived name is safe to join under the root.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "\\", "_")
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		name = "document"
	}
	return name
}
