// File: internal/image/service.go
package image

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Descriptor is the public shape of a stored image, returned alongside the
// POIs that reference it.
type Descriptor struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Store persists uploaded POI images on disk and resolves stored image
// identifiers back into serveable descriptors.
type Store struct {
	storagePath   string // Base path for storing files, e.g., "./images"
	publicBaseURL string
	logger        *zap.Logger
}

// NewStore creates a Store rooted at storagePath, creating the directory if
// it does not yet exist.
func NewStore(storagePath, publicBaseURL string, logger *zap.Logger) (*Store, error) {
	if storagePath == "" {
		return nil, fmt.Errorf("storage path cannot be empty")
	}
	if err := os.MkdirAll(storagePath, os.ModePerm); err != nil {
		logger.Error("Failed to create storage path directory", zap.String("path", storagePath), zap.Error(err))
		return nil, fmt.Errorf("failed to create storage path %s: %w", storagePath, err)
	}
	logger.Info("Image store initialized", zap.String("storagePath", storagePath))
	return &Store{
		storagePath:   storagePath,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:        logger,
	}, nil
}

// SaveUploaded saves a multipart upload under the "poi" sub-directory and
// returns the image identifier (e.g. "poi/uuid.jpg") used to reference it
// from a POI's image list.
func (s *Store) SaveUploaded(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil {
		return "", fmt.Errorf("fileHeader cannot be nil")
	}

	src, err := fileHeader.Open()
	if err != nil {
		s.logger.Error("Failed to open uploaded file", zap.Error(err))
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	extension := filepath.Ext(filepath.Base(fileHeader.Filename))
	if extension == "" {
		extension = extensionForContentType(fileHeader.Header.Get("Content-Type"))
	}
	if extension == "" {
		return "", fmt.Errorf("unsupported file type or missing extension: %s", fileHeader.Header.Get("Content-Type"))
	}

	return s.write(src, extension)
}

// Save stores raw image bytes with an extension inferred from contentType.
func (s *Store) Save(data io.Reader, contentType string) (string, error) {
	extension := extensionForContentType(contentType)
	if extension == "" {
		return "", fmt.Errorf("unsupported content type: %s", contentType)
	}
	return s.write(data, extension)
}

func (s *Store) write(src io.Reader, extension string) (string, error) {
	uniqueFilename := uuid.New().String() + extension

	destinationDir := filepath.Join(s.storagePath, "poi")
	if err := os.MkdirAll(destinationDir, os.ModePerm); err != nil {
		s.logger.Error("Failed to create image sub-directory", zap.String("path", destinationDir), zap.Error(err))
		return "", fmt.Errorf("failed to create directory %s: %w", destinationDir, err)
	}

	destinationPath := filepath.Join(destinationDir, uniqueFilename)

	dst, err := os.Create(destinationPath)
	if err != nil {
		s.logger.Error("Failed to create destination file", zap.String("path", destinationPath), zap.Error(err))
		return "", fmt.Errorf("failed to create file %s: %w", destinationPath, err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		s.logger.Error("Failed to copy uploaded file to destination", zap.String("path", destinationPath), zap.Error(err))
		os.Remove(destinationPath)
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	s.logger.Info("Image saved", zap.String("path", destinationPath))
	return filepath.ToSlash(filepath.Join("poi", uniqueFilename)), nil
}

// Descriptors resolves stored image identifiers into serveable descriptors.
// The result preserves the order of ids; identifiers whose backing file has
// gone missing are skipped rather than failing the whole listing.
func (s *Store) Descriptors(ids []string) []Descriptor {
	descriptors := make([]Descriptor, 0, len(ids))
	for _, id := range ids {
		cleanID := filepath.Clean(filepath.FromSlash(id))
		if strings.Contains(cleanID, "..") {
			s.logger.Warn("Skipping image id with path traversal", zap.String("id", id))
			continue
		}
		if _, err := os.Stat(filepath.Join(s.storagePath, cleanID)); err != nil {
			s.logger.Warn("Skipping image id with missing backing file", zap.String("id", id))
			continue
		}
		descriptors = append(descriptors, Descriptor{
			ID:  id,
			URL: s.publicBaseURL + "/" + id,
		})
	}
	return descriptors
}

// Delete removes a stored image. Deleting an identifier whose file is
// already gone is not an error.
func (s *Store) Delete(id string) error {
	if id == "" {
		return fmt.Errorf("image id cannot be empty")
	}

	cleanID := filepath.Clean(filepath.FromSlash(id))
	if strings.Contains(cleanID, "..") {
		s.logger.Warn("Attempt to delete image with path traversal", zap.String("id", id))
		return fmt.Errorf("invalid image id for deletion")
	}

	fullPath := filepath.Join(s.storagePath, cleanID)

	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		s.logger.Warn("Attempt to delete non-existent image", zap.String("path", fullPath))
		return nil
	}

	if err := os.Remove(fullPath); err != nil {
		s.logger.Error("Failed to delete image", zap.String("path", fullPath), zap.Error(err))
		return fmt.Errorf("failed to delete image %s: %w", fullPath, err)
	}

	s.logger.Info("Image deleted", zap.String("path", fullPath))
	return nil
}

func extensionForContentType(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/jpeg"):
		return ".jpg"
	case strings.HasPrefix(contentType, "image/png"):
		return ".png"
	case strings.HasPrefix(contentType, "image/gif"):
		return ".gif"
	default:
		return ""
	}
}
