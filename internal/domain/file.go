package domain

import (
	"context"
	"io"
	"time"
)

// File is an externally-managed media asset (a meetup banner). Meetups
// reference files by ID only.
// swagger:model File
type File struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// FileRepository defines storage operations for file records.
type FileRepository interface {
	Create(ctx context.Context, f *File) error
	GetByID(ctx context.Context, id string) (*File, error)
}

// BlobStorage stores file contents and returns the stored name. The
// repository keeps the metadata; the blob lives outside the database.
type BlobStorage interface {
	Save(name string, r io.Reader) (storedPath string, err error)
	URL(storedPath string) string
}

// FileService stores uploaded banners.
type FileService interface {
	Store(ctx context.Context, originalName string, r io.Reader) (*File, error)
}
