package importer

import (
	"context"

	"github.com/jhoicas/Importador-api/internal/domain/entity"
	"github.com/jhoicas/Importador-api/internal/domain/repository"
)

// Repos agrupa los repositorios que el motor muta durante un run. La misma
// estructura sirve atada al pool (commit por operación) o a una transacción.
type Repos struct {
	Customers  repository.CustomerRepository
	Attributes repository.GenericAttributeRepository
	Pictures   repository.PictureRepository
}

// TxRunner ejecuta fn dentro de una transacción con repos atados a ella.
// Si fn retorna error se hace rollback; si no, commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repos) error) error
}

// RowSource produce el stream de filas ya segmentado: una secuencia finita,
// perezosa y no reiniciable de lotes de tamaño fijo.
type RowSource interface {
	// TotalRows total de filas del dataset.
	TotalRows() int
	// HasColumn indica si el dataset declara la columna.
	HasColumn(name string) bool
	// NextBatch retorna el siguiente lote; vacío cuando el origen se agota.
	NextBatch(ctx context.Context) ([]*Row, error)
}

// DownloadItem descriptor de una descarga; el servicio puebla el resultado.
type DownloadItem struct {
	URL      string
	Path     string // destino; queda resuelto tras la descarga
	MimeType string

	Success      bool
	ErrorMessage string
}

// Downloader es el servicio de descarga de binarios externos.
type Downloader interface {
	// Resolve convierte una referencia en un descriptor; nil si no es resoluble.
	Resolve(rawURL, targetDir, seoName string) *DownloadItem
	// Download ejecuta las descargas y espera a que todas terminen antes de
	// retornar. Las fallas quedan en cada item, no son error del servicio.
	Download(ctx context.Context, items ...*DownloadItem) error
}

// MediaService valida/normaliza binarios de imagen y detecta duplicados.
type MediaService interface {
	// ValidatePicture verifica que el binario sea una imagen soportada y
	// retorna el binario normalizado.
	ValidatePicture(binary []byte, mimeType string) ([]byte, error)
	// FindEqualPicture busca entre candidates una imagen igual al binario.
	FindEqualPicture(binary []byte, candidates []*entity.Picture) (*entity.Picture, bool)
}

// Notifier recibe eventos de cliente insertado/actualizado. Es best-effort y
// por diseño se notifica un solo representante de cada tipo por lote (el
// último), no cada entidad.
type Notifier interface {
	CustomerInserted(customer *entity.Customer)
	CustomerUpdated(customer *entity.Customer)
}
