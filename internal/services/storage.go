package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var allowedExtensions = map[string]bool{
	".pdf": true,
	".txt": true,
}

// StorageService validates resume uploads and optionally keeps a copy of
// the original file on disk.
type StorageService interface {
	ReadUpload(file *multipart.FileHeader) ([]byte, error)
	SaveUpload(originalName string, data []byte) (string, error)
	EnsureUploadDir() error
}

type storageService struct {
	uploadPath  string
	maxFileSize int64
}

func NewStorageService(uploadPath string, maxFileSize int64) StorageService {
	return &storageService{
		uploadPath:  uploadPath,
		maxFileSize: maxFileSize,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

// ValidateExtension reports whether a resume file name has a supported type.
func ValidateExtension(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return fmt.Errorf("invalid file extension: %q", ext)
	}
	return nil
}

func (s *storageService) ReadUpload(file *multipart.FileHeader) ([]byte, error) {
	if err := ValidateExtension(file.Filename); err != nil {
		return nil, err
	}
	if s.maxFileSize > 0 && file.Size > s.maxFileSize {
		return nil, fmt.Errorf("file %s too large, max size: %d bytes", file.Filename, s.maxFileSize)
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	return data, nil
}

// SaveUpload writes data under a unique name and returns that name.
func (s *storageService) SaveUpload(originalName string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	uniqueFilename := fmt.Sprintf("resume_%s%s", uuid.New().String(), ext)

	if err := os.WriteFile(filepath.Join(s.uploadPath, uniqueFilename), data, 0644); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return uniqueFilename, nil
}
