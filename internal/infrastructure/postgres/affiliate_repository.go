package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Importador-api/internal/domain/repository"
)

var _ repository.AffiliateRepository = (*AffiliateRepo)(nil)

// AffiliateRepo proveedor de los IDs de afiliados vigentes.
type AffiliateRepo struct {
	q Querier
}

// NewAffiliateRepository construye el adaptador.
func NewAffiliateRepository(q Querier) *AffiliateRepo {
	return &AffiliateRepo{q: q}
}

// ListIDs enumera los IDs de afiliados activos.
func (r *AffiliateRepo) ListIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.q.Query(ctx, `SELECT id FROM affiliate WHERE active ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list affiliates: %w", err)
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan affiliate: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
