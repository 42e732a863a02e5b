package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/creostudios/studiosvc/domain"
)

// UploadRepositoryImpl implements domain.UploadRepository using GORM
type UploadRepositoryImpl struct {
	db *gorm.DB
}

// DBUploadedFile represents the database model for a stored file. The file
// content lives in the database itself, not on disk.
type DBUploadedFile struct {
	ID               uint   `gorm:"primaryKey"`
	Filename         string `gorm:"size:255"`
	OriginalFilename string `gorm:"size:255"`
	FileType         string `gorm:"size:32"`
	MimeType         string `gorm:"size:128"`
	Data             []byte `gorm:"type:bytea"`
	Size             int64
	UploadedBy       string    `gorm:"index;size:150"`
	CreatedAt        time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBUploadedFile) TableName() string {
	return "uploaded_files"
}

// NewUploadRepository creates a new upload repository
func NewUploadRepository(db *gorm.DB) domain.UploadRepository {
	return &UploadRepositoryImpl{db: db}
}

// Create implements domain.UploadRepository
func (r *UploadRepositoryImpl) Create(ctx context.Context, file *domain.UploadedFile) error {
	dbFile := &DBUploadedFile{
		Filename:         file.Filename,
		OriginalFilename: file.OriginalFilename,
		FileType:         file.FileType,
		MimeType:         file.MimeType,
		Data:             file.Data,
		Size:             file.Size,
		UploadedBy:       file.UploadedBy,
	}
	if err := r.db.WithContext(ctx).Create(dbFile).Error; err != nil {
		return err
	}
	file.ID = dbFile.ID
	file.CreatedAt = dbFile.CreatedAt
	return nil
}

// FindByID implements domain.UploadRepository
func (r *UploadRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.UploadedFile, error) {
	var dbFile DBUploadedFile
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbFile).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrFileNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbFile), nil
}

// ListAll implements domain.UploadRepository. File content is omitted from
// listings; callers fetch it per file.
func (r *UploadRepositoryImpl) ListAll(ctx context.Context) ([]domain.UploadedFile, error) {
	var dbFiles []DBUploadedFile
	err := r.db.WithContext(ctx).
		Select("id", "filename", "original_filename", "file_type", "mime_type", "size", "uploaded_by", "created_at").
		Order("created_at DESC").
		Find(&dbFiles).Error
	if err != nil {
		return nil, err
	}

	files := make([]domain.UploadedFile, 0, len(dbFiles))
	for i := range dbFiles {
		files = append(files, *r.dbToDomain(&dbFiles[i]))
	}
	return files, nil
}

func (r *UploadRepositoryImpl) dbToDomain(dbFile *DBUploadedFile) *domain.UploadedFile {
	return &domain.UploadedFile{
		ID:               dbFile.ID,
		Filename:         dbFile.Filename,
		OriginalFilename: dbFile.OriginalFilename,
		FileType:         dbFile.FileType,
		MimeType:         dbFile.MimeType,
		Data:             dbFile.Data,
		Size:             dbFile.Size,
		UploadedBy:       dbFile.UploadedBy,
		CreatedAt:        dbFile.CreatedAt,
	}
}
