package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Importador-api/internal/domain/entity"
	"github.com/jhoicas/Importador-api/internal/domain/repository"
)

var _ repository.PictureRepository = (*PictureRepo)(nil)

// PictureRepo implementación de PictureRepository.
type PictureRepo struct {
	q Querier
}

// NewPictureRepository construye el adaptador.
func NewPictureRepository(q Querier) *PictureRepo {
	return &PictureRepo{q: q}
}

// GetByID retorna la imagen con su binario, o (nil, nil) si no existe.
func (r *PictureRepo) GetByID(ctx context.Context, id int64) (*entity.Picture, error) {
	var p entity.Picture
	err := r.q.QueryRow(ctx,
		`SELECT id, mime_type, seo_filename, binary_data, updated_on_utc FROM picture WHERE id = $1`,
		id).Scan(&p.ID, &p.MimeType, &p.SeoFilename, &p.Binary, &p.UpdatedOnUTC)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get picture: %w", err)
	}
	return &p, nil
}

// Insert persiste la imagen y asigna su ID.
func (r *PictureRepo) Insert(ctx context.Context, p *entity.Picture) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO picture (mime_type, seo_filename, binary_data, updated_on_utc)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		p.MimeType, p.SeoFilename, p.Binary, p.UpdatedOnUTC).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("insert picture: %w", err)
	}
	return nil
}
