package repository

import (
	"context"

	"github.com/jhoicas/Importador-api/internal/domain/entity"
)

// PictureRepository define el puerto de persistencia de activos de media.
type PictureRepository interface {
	// GetByID retorna la imagen con su binario, o (nil, nil) si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Picture, error)
	// Insert persiste la imagen y asigna su ID.
	Insert(ctx context.Context, picture *entity.Picture) error
}
