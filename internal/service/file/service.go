package file

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/presensia/timetrack-backend-go/internal/pkg/storage"
)

type FileService interface {
	// Upload stores an arbitrary file for the authenticated user and
	// returns its public URL
	Upload(ctx context.Context, file io.Reader, filename string) (string, error)

	// UploadLogbookAttachment stores a logbook attachment and returns its
	// public URL
	UploadLogbookAttachment(ctx context.Context, userID string, file io.Reader, filename string) (string, error)

	// DeleteFile removes a previously stored file by its URL or key
	DeleteFile(ctx context.Context, path string) error
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// Upload stores a file under a per-user prefix and returns its public URL.
func (s *fileServiceImpl) Upload(ctx context.Context, file io.Reader, filename string) (string, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return "", err
	}
	return s.upload(ctx, "files", userID, file, filename)
}

func userIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}
	return userID, nil
}

// UploadLogbookAttachment uploads a logbook attachment under a per-user prefix.
func (s *fileServiceImpl) UploadLogbookAttachment(ctx context.Context, userID string, file io.Reader, filename string) (string, error) {
	return s.upload(ctx, "logbook", userID, file, filename)
}

func (s *fileServiceImpl) upload(ctx context.Context, prefix, userID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	newFilename := fmt.Sprintf("%s%s", uuid.NewString(), ext)
	path := filepath.Join(prefix, userID, newFilename)

	key, err := s.storage.Upload(ctx, file, path)
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	return s.storage.URL(key), nil
}

// DeleteFile removes a stored file. Full URLs are reduced to their storage key.
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	if idx := strings.Index(path, "/uploads/"); idx >= 0 {
		path = path[idx+len("/uploads/"):]
	}
	return s.storage.Delete(ctx, path)
}
