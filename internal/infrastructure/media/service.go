package media

import (
	"bytes"
	"fmt"
	"image"

	// Decoders registrados para la validación de formato.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/jhoicas/Importador-api/internal/application/importer"
	"github.com/jhoicas/Importador-api/internal/domain/entity"
	"github.com/zeebo/xxh3"
)

var _ importer.MediaService = (*Service)(nil)

// maxPictureBytes tope de tamaño de un avatar.
const maxPictureBytes = 5 << 20 // 5 MiB

// Service valida binarios de imagen y detecta duplicados por hash xxh3 con
// confirmación byte a byte.
type Service struct{}

// NewService construye el servicio de media.
func NewService() *Service {
	return &Service{}
}

// ValidatePicture verifica que el binario sea una imagen soportada (gif, jpeg
// o png) y que no supere el tope de tamaño. Retorna el binario normalizado.
func (s *Service) ValidatePicture(binary []byte, mimeType string) ([]byte, error) {
	if len(binary) == 0 {
		return nil, fmt.Errorf("binario vacío")
	}
	if len(binary) > maxPictureBytes {
		return nil, fmt.Errorf("imagen de %d bytes supera el tope de %d", len(binary), maxPictureBytes)
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(binary)); err != nil {
		return nil, fmt.Errorf("formato de imagen no soportado: %w", err)
	}
	return binary, nil
}

// FindEqualPicture busca entre candidates una imagen con el mismo contenido.
func (s *Service) FindEqualPicture(binary []byte, candidates []*entity.Picture) (*entity.Picture, bool) {
	hash := xxh3.Hash(binary)
	for _, c := range candidates {
		if xxh3.Hash(c.Binary) == hash && bytes.Equal(c.Binary, binary) {
			return c, true
		}
	}
	return nil, false
}
