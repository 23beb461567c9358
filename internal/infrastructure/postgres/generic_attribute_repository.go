package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Importador-api/internal/domain/repository"
)

var _ repository.GenericAttributeRepository = (*GenericAttributeRepo)(nil)

// GenericAttributeRepo implementación del almacén clave-valor auxiliar.
type GenericAttributeRepo struct {
	q Querier
}

// NewGenericAttributeRepository construye el adaptador.
func NewGenericAttributeRepository(q Querier) *GenericAttributeRepo {
	return &GenericAttributeRepo{q: q}
}

// Get retorna el valor del atributo, o "" si no existe.
func (r *GenericAttributeRepo) Get(ctx context.Context, entityID int64, keyGroup, key string) (string, error) {
	var value string
	err := r.q.QueryRow(ctx,
		`SELECT value FROM generic_attribute WHERE entity_id = $1 AND key_group = $2 AND key = $3`,
		entityID, keyGroup, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("get attribute: %w", err)
	}
	return value, nil
}

// ListValuesByKey retorna todos los valores guardados para una clave del grupo.
func (r *GenericAttributeRepo) ListValuesByKey(ctx context.Context, keyGroup, key string) ([]string, error) {
	rows, err := r.q.Query(ctx,
		`SELECT value FROM generic_attribute WHERE key_group = $1 AND key = $2`, keyGroup, key)
	if err != nil {
		return nil, fmt.Errorf("list attribute values: %w", err)
	}
	defer rows.Close()
	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan attribute value: %w", err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// Save sobrescribe el valor del atributo; un valor vacío lo elimina.
func (r *GenericAttributeRepo) Save(ctx context.Context, entityID int64, keyGroup, key, value string) error {
	if value == "" {
		_, err := r.q.Exec(ctx,
			`DELETE FROM generic_attribute WHERE entity_id = $1 AND key_group = $2 AND key = $3`,
			entityID, keyGroup, key)
		if err != nil {
			return fmt.Errorf("delete attribute: %w", err)
		}
		return nil
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO generic_attribute (entity_id, key_group, key, value)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (entity_id, key_group, key) DO UPDATE SET value = EXCLUDED.value`,
		entityID, keyGroup, key, value)
	if err != nil {
		return fmt.Errorf("save attribute: %w", err)
	}
	return nil
}
