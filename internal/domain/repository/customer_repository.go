package repository

import (
	"context"

	"github.com/jhoicas/Importador-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
// Los Get* retornan (nil, nil) cuando no hay coincidencia.
type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Customer, error)
	GetByGUID(ctx context.Context, guid string) (*entity.Customer, error)
	GetByEmail(ctx context.Context, email string) (*entity.Customer, error)
	GetByUsername(ctx context.Context, username string) (*entity.Customer, error)

	// InsertBatch persiste clientes nuevos (asigna ID) y retorna cuántos insertó.
	InsertBatch(ctx context.Context, customers []*entity.Customer) (int, error)
	// UpdateBatch actualiza clientes existentes y retorna cuántos afectó.
	UpdateBatch(ctx context.Context, customers []*entity.Customer) (int, error)
	// Update actualiza un único cliente (vínculos billing/shipping incluidos).
	Update(ctx context.Context, customer *entity.Customer) error

	// LoadRoles carga la colección de roles del cliente (bajo demanda).
	LoadRoles(ctx context.Context, customer *entity.Customer) error
	// SaveRoles sincroniza el mapping de roles con customer.Roles.
	SaveRoles(ctx context.Context, customer *entity.Customer) error

	// LoadAddresses carga las direcciones vinculadas al cliente.
	LoadAddresses(ctx context.Context, customer *entity.Customer) error
	// SaveAddresses inserta las direcciones nuevas (ID == 0) y asegura el
	// mapping cliente-dirección; los vínculos billing/shipping los persiste
	// Update sobre el cliente.
	SaveAddresses(ctx context.Context, customer *entity.Customer) error
}
