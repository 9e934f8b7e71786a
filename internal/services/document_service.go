package services

import (
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	apperrors "heirloom/internal/errors"
	"heirloom/internal/logger"
	"heirloom/internal/models"
	"heirloom/internal/uuid"
)

// allowedExtensions are the accepted supporting document types.
var allowedExtensions = map[string]string{
	".pdf":  "application/pdf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// documentService handles supporting document attachments. Files are stored
// on disk under a UUIDv7 name; the original filename lives in the DB row.
type documentService struct {
	db       *gorm.DB
	baseDir  string
	maxBytes int64
}

// NewDocumentService creates a new DocumentServicer storing files under
// baseDir, rejecting uploads larger than maxBytes.
func NewDocumentService(db *gorm.DB, baseDir string, maxBytes int64) DocumentServicer {
	return &documentService{db: db, baseDir: baseDir, maxBytes: maxBytes}
}

// Attach stores the uploaded file and links it to the asset. Each asset
// holds at most one document; the step is optional and an asset without a
// document stays valid.
func (s *documentService) Attach(userID, assetID uint, file *multipart.FileHeader) (*models.AssetDocument, error) {
	if err := s.checkAssetOwnership(userID, assetID); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.AssetDocument{}).Where("asset_id = ?", assetID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDocumentExists
	}

	if file.Size > s.maxBytes {
		return nil, apperrors.ErrFileTooLarge
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	contentType, ok := allowedExtensions[ext]
	if !ok {
		return nil, apperrors.ErrUnsupportedFile
	}

	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	storedName := uuid.New() + ext
	path := filepath.Join(s.baseDir, storedName)
	if err := s.saveFile(file, path); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	doc := &models.AssetDocument{
		AssetID:     assetID,
		FileName:    filepath.Base(file.Filename),
		StoredName:  storedName,
		ContentType: contentType,
		SizeBytes:   file.Size,
	}
	if err := s.db.Create(doc).Error; err != nil {
		if rmErr := os.Remove(path); rmErr != nil {
			logger.Get().Warnw("failed to remove orphaned upload", "path", path, "error", rmErr)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return doc, nil
}

// Get returns the document row for an asset plus the on-disk path.
func (s *documentService) Get(userID, assetID uint) (*models.AssetDocument, string, error) {
	if err := s.checkAssetOwnership(userID, assetID); err != nil {
		return nil, "", err
	}

	var doc models.AssetDocument
	if err := s.db.Where("asset_id = ?", assetID).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperrors.ErrDocumentNotFound
		}
		return nil, "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &doc, filepath.Join(s.baseDir, doc.StoredName), nil
}

// Remove deletes the document row and best-effort removes the stored file.
// The delete is hard: a soft-deleted row would keep holding the unique
// asset_id index and block every later re-attach for the asset.
func (s *documentService) Remove(userID, assetID uint) error {
	doc, path, err := s.Get(userID, assetID)
	if err != nil {
		return err
	}
	if err := s.db.Unscoped().Delete(doc).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Get().Warnw("failed to remove stored document", "path", path, "error", err)
	}
	return nil
}

func (s *documentService) saveFile(file *multipart.FileHeader, path string) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

func (s *documentService) checkAssetOwnership(userID, assetID uint) error {
	var count int64
	if err := s.db.Model(&models.Asset{}).Where("id = ? AND user_id = ?", assetID, userID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrAssetNotFound
	}
	return nil
}
