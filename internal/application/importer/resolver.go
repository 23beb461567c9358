package importer

import (
	"context"
	"fmt"

	"github.com/jhoicas/Importador-api/internal/domain/entity"
	"github.com/jhoicas/Importador-api/internal/domain/repository"
)

// resolveCustomer intenta cada campo clave configurado, en orden, contra el
// almacén y se detiene en la primera coincidencia. Un campo vacío en la fila
// se salta. Retorna (nil, nil) si ningún campo resuelve.
func (e *Engine) resolveCustomer(ctx context.Context, customers repository.CustomerRepository, row *Row) (*entity.Customer, error) {
	for _, field := range e.settings.KeyFields {
		var (
			found *entity.Customer
			err   error
		)
		switch field {
		case KeyFieldID:
			id, ok := row.GetInt64("Id")
			if !ok {
				continue
			}
			found, err = customers.GetByID(ctx, id)
		case KeyFieldGUID:
			guid := row.Get("CustomerGuid")
			if guid == "" {
				continue
			}
			found, err = customers.GetByGUID(ctx, guid)
		case KeyFieldEmail:
			email := row.Get("Email")
			if email == "" {
				continue
			}
			found, err = customers.GetByEmail(ctx, email)
		case KeyFieldUsername:
			username := row.Get("Username")
			if username == "" {
				continue
			}
			found, err = customers.GetByUsername(ctx, username)
		}
		if err != nil {
			return nil, fmt.Errorf("buscar por %s: %w", field, err)
		}
		if found != nil {
			return found, nil
		}
	}
	return nil, nil
}
