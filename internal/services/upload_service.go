package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/creostudios/studiosvc/domain"
)

// allowedExtensions maps file type categories to the extensions accepted for
// delivery uploads.
var allowedExtensions = map[string][]string{
	"video":    {"mp4", "mov", "avi", "mkv", "webm"},
	"image":    {"png", "jpg", "jpeg", "gif", "webp"},
	"document": {"pdf", "doc", "docx", "psd", "ai"},
	"archive":  {"zip", "rar", "7z"},
	"package":  {"apk"},
}

var mimeTypes = map[string]string{
	"mp4":  "video/mp4",
	"mov":  "video/quicktime",
	"avi":  "video/x-msvideo",
	"mkv":  "video/x-matroska",
	"webm": "video/webm",
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"webp": "image/webp",
	"pdf":  "application/pdf",
	"doc":  "application/msword",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"psd":  "image/vnd.adobe.photoshop",
	"ai":   "application/postscript",
	"zip":  "application/zip",
	"rar":  "application/x-rar-compressed",
	"7z":   "application/x-7z-compressed",
	"apk":  "application/vnd.android.package-archive",
}

// UploadServiceImpl implements domain.UploadService
type UploadServiceImpl struct {
	uploadRepo domain.UploadRepository
}

// NewUploadService creates a new upload service
func NewUploadService(uploadRepo domain.UploadRepository) domain.UploadService {
	return &UploadServiceImpl{uploadRepo: uploadRepo}
}

// Store implements domain.UploadService. The stored name gets a random
// prefix so repeated uploads of the same file never collide.
func (s *UploadServiceImpl) Store(ctx context.Context, uploadedBy, filename string, data []byte) (*domain.UploadedFile, error) {
	if len(data) == 0 {
		return nil, domain.ErrFileEmpty
	}

	original := filepath.Base(filename)
	ext := fileExtension(original)
	fileType, ok := fileTypeFor(ext)
	if !ok {
		return nil, domain.ErrFileTypeNotAllowed
	}

	file := &domain.UploadedFile{
		Filename:         fmt.Sprintf("%s_%s", uuid.NewString()[:8], original),
		OriginalFilename: original,
		FileType:         fileType,
		MimeType:         mimeTypeFor(ext),
		Data:             data,
		Size:             int64(len(data)),
		UploadedBy:       uploadedBy,
	}

	if err := s.uploadRepo.Create(ctx, file); err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	return file, nil
}

// Fetch implements domain.UploadService
func (s *UploadServiceImpl) Fetch(ctx context.Context, id uint) (*domain.UploadedFile, error) {
	return s.uploadRepo.FindByID(ctx, id)
}

// List implements domain.UploadService
func (s *UploadServiceImpl) List(ctx context.Context) ([]domain.UploadedFile, error) {
	return s.uploadRepo.ListAll(ctx)
}

func fileExtension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return strings.TrimPrefix(ext, ".")
}

func fileTypeFor(ext string) (string, bool) {
	for fileType, exts := range allowedExtensions {
		for _, e := range exts {
			if e == ext {
				return fileType, true
			}
		}
	}
	return "", false
}

func mimeTypeFor(ext string) string {
	if mt, ok := mimeTypes[ext]; ok {
		return mt
	}
	return "application/octet-stream"
}
