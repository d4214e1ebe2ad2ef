// file: services/upload_service.go
package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Meril1494/Paperly/models"
	"github.com/Meril1494/Paperly/storage"
)

// 上传校验错误，由 controller 映射为 400
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
)

// MaxUploadSize 单个资源文件的大小上限（10 MiB）
const MaxUploadSize = 10 << 20

// MIME 白名单及对应的落盘扩展名
var allowedContentTypes = map[string]string{
	"application/pdf":    ".pdf",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
	"text/plain": ".txt",
	"image/png":  ".png",
	"image/jpeg": ".jpg",
}

type UploadService struct {
	db    *gorm.DB
	store storage.Store
}

func NewUploadService(db *gorm.DB, store storage.Store) *UploadService {
	return &UploadService{db: db, store: store}
}

// UploadResource 校验并保存上传文件，然后在同一事务中写入文件元数据和
// resource 类型的班级内容记录。写入顺序保证内容记录永远不会引用一个
// 不存在的文件；事务失败时落盘文件成为孤儿，记录日志等待离线清理
func (s *UploadService) UploadResource(ctx context.Context, classroomID uint32, fh *multipart.FileHeader, title string, userID uint32) (*models.ClassroomContent, error) {
	contentType := fh.Header.Get("Content-Type")
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}

	ext, ok := allowedContentTypes[contentType]
	if !ok {
		return nil, ErrUnsupportedFileType
	}
	if fh.Size > MaxUploadSize {
		return nil, ErrFileTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	fileID := uuid.NewString()
	objectKey := fileID + ext

	hasher := sha256.New()
	if err := s.store.Save(ctx, objectKey, io.TeeReader(f, hasher)); err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	if title == "" {
		title = fh.Filename
	}

	storedFile := models.StoredFile{
		ID:          fileID,
		ObjectKey:   objectKey,
		FileName:    fh.Filename,
		ContentType: contentType,
		FileSize:    fh.Size,
		SHA256:      hex.EncodeToString(hasher.Sum(nil)),
		CreatedBy:   userID,
		CreatedAt:   time.Now(),
	}
	record := models.ClassroomContent{
		ClassroomID: classroomID,
		Type:        models.ContentTypeResource,
		Title:       title,
		FileID:      &storedFile.ID,
		FileName:    fh.Filename,
		FileURL:     "/api/resources/" + fileID,
		CreatedBy:   userID,
		CreatedAt:   time.Now(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&storedFile).Error; err != nil {
			return err
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		// 文件已持久化但元数据写入失败：不回滚存储，留给离线清理
		log.Printf("orphaned blob %s after registry write failure: %v", objectKey, err)
		return nil, fmt.Errorf("create resource record: %w", err)
	}

	return &record, nil
}
