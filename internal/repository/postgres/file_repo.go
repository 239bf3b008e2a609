package postgres

import (
	"context"
	"database/sql"
	"errors"

	"meetapp/internal/domain"
)

type fileRepository struct {
	DB *sql.DB
}

func NewFileRepository(db *sql.DB) domain.FileRepository {
	return &fileRepository{DB: db}
}

func (r *fileRepository) Create(ctx context.Context, f *domain.File) error {
	query := `
		INSERT INTO files (name, path, url, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, f.Name, f.Path, f.URL, f.CreatedAt).Scan(&f.ID)
}

func (r *fileRepository) GetByID(ctx context.Context, id string) (*domain.File, error) {
	query := `
		SELECT id, name, path, url, created_at
		FROM files
		WHERE id = $1
	`
	f := &domain.File{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&f.ID, &f.Name, &f.Path, &f.URL, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return f, nil
}
