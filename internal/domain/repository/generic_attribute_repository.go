package repository

import "context"

// GenericAttributeRepository define el puerto del almacén clave-valor auxiliar.
type GenericAttributeRepository interface {
	// Get retorna el valor del atributo, o "" si no existe.
	Get(ctx context.Context, entityID int64, keyGroup, key string) (string, error)
	// ListValuesByKey retorna todos los valores guardados para una clave
	// dentro de un grupo (ej. todos los CustomerNumber asignados).
	ListValuesByKey(ctx context.Context, keyGroup, key string) ([]string, error)
	// Save sobrescribe el valor del atributo (upsert idempotente).
	// Un valor vacío elimina el atributo.
	Save(ctx context.Context, entityID int64, keyGroup, key, value string) error
}
