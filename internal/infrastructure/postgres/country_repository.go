package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Importador-api/internal/domain/entity"
	"github.com/jhoicas/Importador-api/internal/domain/repository"
)

var _ repository.CountryRepository = (*CountryRepo)(nil)

// CountryRepo proveedor de datos de referencia de países.
type CountryRepo struct {
	q Querier
}

// NewCountryRepository construye el adaptador.
func NewCountryRepository(q Querier) *CountryRepo {
	return &CountryRepo{q: q}
}

// List enumera todos los países publicados.
func (r *CountryRepo) List(ctx context.Context) ([]*entity.Country, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, name, two_letter_iso_code, three_letter_iso_code, published
		FROM country WHERE published ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	defer rows.Close()
	var list []*entity.Country
	for rows.Next() {
		var c entity.Country
		if err := rows.Scan(&c.ID, &c.Name, &c.TwoLetterISOCode, &c.ThreeLetterISOCode, &c.Published); err != nil {
			return nil, fmt.Errorf("scan country: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
