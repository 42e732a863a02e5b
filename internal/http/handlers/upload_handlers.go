package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/creostudios/studiosvc/domain"
)

// maxUploadBytes caps a single delivery artifact at 100 MB
const maxUploadBytes = 100 << 20

// UploadHandlers handles delivery artifact HTTP requests
type UploadHandlers struct {
	uploadSvc domain.UploadService
	authSvc   domain.AuthService
}

// NewUploadHandlers creates new upload handlers
func NewUploadHandlers(uploadSvc domain.UploadService, authSvc domain.AuthService) *UploadHandlers {
	return &UploadHandlers{
		uploadSvc: uploadSvc,
		authSvc:   authSvc,
	}
}

// Upload handles a multipart file upload (admin only)
func (h *UploadHandlers) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File exceeds the 100MB limit"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxUploadBytes+1))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}
	if len(data) > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File exceeds the 100MB limit"})
		return
	}

	uploadedBy := h.uploaderEmail(c)

	file, err := h.uploadSvc.Store(c.Request.Context(), uploadedBy, fileHeader.Filename, data)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrFileEmpty):
			c.JSON(http.StatusBadRequest, gin.H{"error": "File is empty"})
		case errors.Is(err, domain.ErrFileTypeNotAllowed):
			c.JSON(http.StatusBadRequest, gin.H{"error": "File type not allowed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data": gin.H{
			"file_id":           file.ID,
			"filename":          file.Filename,
			"original_filename": file.OriginalFilename,
			"file_type":         file.FileType,
			"size":              file.Size,
			"download_url":      fmt.Sprintf("/api/uploads/%d", file.ID),
		},
	})
}

// Download streams a stored file back to the caller
func (h *UploadHandlers) Download(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file ID"})
		return
	}

	file, err := h.uploadSvc.Fetch(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrFileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch file"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.OriginalFilename))
	c.Data(http.StatusOK, file.MimeType, file.Data)
}

// List returns stored file metadata without the blobs (admin only)
func (h *UploadHandlers) List(c *gin.Context) {
	files, err := h.uploadSvc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list files"})
		return
	}

	out := make([]gin.H, 0, len(files))
	for _, file := range files {
		out = append(out, gin.H{
			"file_id":           file.ID,
			"filename":          file.Filename,
			"original_filename": file.OriginalFilename,
			"file_type":         file.FileType,
			"mime_type":         file.MimeType,
			"size":              file.Size,
			"uploaded_by":       file.UploadedBy,
			"created_at":        file.CreatedAt,
			"download_url":      fmt.Sprintf("/api/uploads/%d", file.ID),
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": out})
}

func (h *UploadHandlers) uploaderEmail(c *gin.Context) string {
	userIDStr, exists := c.Get("user_id")
	if !exists {
		return ""
	}
	userID, err := strconv.ParseUint(userIDStr.(string), 10, 32)
	if err != nil {
		return ""
	}
	user, err := h.authSvc.GetUserProfile(c.Request.Context(), uint(userID))
	if err != nil {
		return ""
	}
	return user.Email
}
