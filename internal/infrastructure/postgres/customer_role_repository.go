package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Importador-api/internal/domain/entity"
	"github.com/jhoicas/Importador-api/internal/domain/repository"
)

var _ repository.CustomerRoleRepository = (*CustomerRoleRepo)(nil)

// CustomerRoleRepo proveedor de los roles de cliente.
type CustomerRoleRepo struct {
	q Querier
}

// NewCustomerRoleRepository construye el adaptador.
func NewCustomerRoleRepository(q Querier) *CustomerRoleRepo {
	return &CustomerRoleRepo{q: q}
}

// List enumera todos los roles.
func (r *CustomerRoleRepo) List(ctx context.Context) ([]*entity.CustomerRole, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, name, system_name, active, is_system_role FROM customer_role ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list customer roles: %w", err)
	}
	defer rows.Close()
	var list []*entity.CustomerRole
	for rows.Next() {
		var role entity.CustomerRole
		if err := rows.Scan(&role.ID, &role.Name, &role.SystemName, &role.Active, &role.IsSystemRole); err != nil {
			return nil, fmt.Errorf("scan customer role: %w", err)
		}
		list = append(list, &role)
	}
	return list, rows.Err()
}
