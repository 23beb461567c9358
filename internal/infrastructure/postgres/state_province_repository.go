package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Importador-api/internal/domain/entity"
	"github.com/jhoicas/Importador-api/internal/domain/repository"
)

var _ repository.StateProvinceRepository = (*StateProvinceRepo)(nil)

// StateProvinceRepo proveedor de datos de referencia de departamentos/estados.
type StateProvinceRepo struct {
	q Querier
}

// NewStateProvinceRepository construye el adaptador.
func NewStateProvinceRepository(q Querier) *StateProvinceRepo {
	return &StateProvinceRepo{q: q}
}

// List enumera todos los departamentos publicados.
func (r *StateProvinceRepo) List(ctx context.Context) ([]*entity.StateProvince, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, country_id, name, abbreviation, published
		FROM state_province WHERE published ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list state provinces: %w", err)
	}
	defer rows.Close()
	var list []*entity.StateProvince
	for rows.Next() {
		var s entity.StateProvince
		if err := rows.Scan(&s.ID, &s.CountryID, &s.Name, &s.Abbreviation, &s.Published); err != nil {
			return nil, fmt.Errorf("scan state province: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
