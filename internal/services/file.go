package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"meetapp/internal/domain"
)

type fileService struct {
	fileRepo domain.FileRepository
	storage  domain.BlobStorage
	now      func() time.Time
}

// NewFileService creates a FileService backed by the given repository and
// blob storage.
func NewFileService(fileRepo domain.FileRepository, storage domain.BlobStorage) domain.FileService {
	return &fileService{
		fileRepo: fileRepo,
		storage:  storage,
		now:      time.Now,
	}
}

func (s *fileService) Store(ctx context.Context, originalName string, r io.Reader) (*domain.File, error) {
	storedPath, err := s.storage.Save(originalName, r)
	if err != nil {
		return nil, fmt.Errorf("save file: %w", err)
	}
	f := &domain.File{
		Name:      originalName,
		Path:      storedPath,
		URL:       s.storage.URL(storedPath),
		CreatedAt: s.now(),
	}
	if err := s.fileRepo.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("create file record: %w", err)
	}
	return f, nil
}
