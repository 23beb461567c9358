package repository

import (
	"context"

	"github.com/jhoicas/Importador-api/internal/domain/entity"
)

// CountryRepository enumera los países de referencia.
type CountryRepository interface {
	List(ctx context.Context) ([]*entity.Country, error)
}

// StateProvinceRepository enumera los departamentos/estados de referencia.
type StateProvinceRepository interface {
	List(ctx context.Context) ([]*entity.StateProvince, error)
}

// CustomerRoleRepository enumera los roles de cliente.
type CustomerRoleRepository interface {
	List(ctx context.Context) ([]*entity.CustomerRole, error)
}

// AffiliateRepository enumera los IDs de afiliados vigentes.
type AffiliateRepository interface {
	ListIDs(ctx context.Context) ([]int64, error)
}
