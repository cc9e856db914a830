package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/model/entity"
	"github.com/mrvenom1989-code/tara-solar-erp/internal/repository"
	"go.uber.org/zap"
)

// ErrStorageNotConfigured is returned when object storage is required but
// no MinIO endpoint was configured.
var ErrStorageNotConfigured = errors.New("storage not configured")

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// DocumentService stores project files in MinIO and tracks them in the
// project_documents table.
type DocumentService struct {
	projectRepo *repository.ProjectRepository
	minioClient *minio.Client
	bucket      string
}

func NewDocumentService(projectRepo *repository.ProjectRepository, minioClient *minio.Client, bucket string) *DocumentService {
	return &DocumentService{
		projectRepo: projectRepo,
		minioClient: minioClient,
		bucket:      bucket,
	}
}

// Upload stores the file and records it against the project.
func (s *DocumentService) Upload(ctx context.Context, projectID, userID, name, docType, contentType string, size int64, reader io.Reader) (*entity.ProjectDocument, error) {
	if s.minioClient == nil {
		return nil, ErrStorageNotConfigured
	}
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		return nil, err
	}
	if docType == "" {
		docType = entity.DocTypePhoto
	}

	cleanName := unsafeNameChars.ReplaceAllString(name, "_")
	objectKey := fmt.Sprintf("projects/%s/%d_%s", projectID, time.Now().UnixMilli(), cleanName)

	if _, err := s.minioClient.PutObject(ctx, s.bucket, objectKey, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		return nil, fmt.Errorf("store object: %w", err)
	}

	doc := &entity.ProjectDocument{
		ID:          generateID(),
		ProjectID:   projectID,
		Name:        name,
		Type:        docType,
		ObjectKey:   objectKey,
		Size:        size,
		ContentType: contentType,
		UploadedBy:  userID,
	}
	if err := s.projectRepo.CreateDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("record document: %w", err)
	}
	return doc, nil
}

// Download streams a stored document.
func (s *DocumentService) Download(ctx context.Context, id string) (*entity.ProjectDocument, io.ReadCloser, error) {
	doc, err := s.projectRepo.FindDocumentByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if s.minioClient == nil {
		return nil, nil, ErrStorageNotConfigured
	}

	obj, err := s.minioClient.GetObject(ctx, s.bucket, doc.ObjectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, fmt.Errorf("fetch object: %w", err)
	}
	return doc, obj, nil
}

// List returns a project's documents.
func (s *DocumentService) List(ctx context.Context, projectID string) ([]entity.ProjectDocument, error) {
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.projectRepo.ListDocuments(ctx, projectID)
}

// Delete removes the record. A failed object removal is logged but does not
// keep the record alive, so the listing never shows dead files.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	doc, err := s.projectRepo.FindDocumentByID(ctx, id)
	if err != nil {
		return err
	}

	if s.minioClient != nil {
		if err := s.minioClient.RemoveObject(ctx, s.bucket, doc.ObjectKey, minio.RemoveObjectOptions{}); err != nil {
			zap.L().Warn("remove object failed",
				zap.String("object_key", doc.ObjectKey),
				zap.Error(err))
		}
	}

	return s.projectRepo.DeleteDocument(ctx, id)
}
