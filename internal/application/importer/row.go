package importer

import (
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/Importador-api/internal/domain/entity"
)

// Formatos de fecha aceptados en columnas temporales, probados en orden.
var rowTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Row es una fila del origen: un mapeo columna → valor crudo, más el estado
// que la fila acumula a través de las fases del pipeline. Una celda vacía se
// considera ausente (semántica de actualización parcial).
type Row struct {
	Position int // posición 1-based dentro del dataset
	values   map[string]string

	// Estado del pipeline, poblado por la fase de upsert.
	Customer    *entity.Customer
	IsNew       bool
	IsTransient bool // rechazada: nunca se persistió; las fases siguientes la ignoran
}

// NewRow construye una fila. values no se copia; el origen no debe reusarlo.
func NewRow(position int, values map[string]string) *Row {
	if values == nil {
		values = map[string]string{}
	}
	return &Row{Position: position, values: values}
}

// Has indica si la columna viene con valor en esta fila.
func (r *Row) Has(column string) bool {
	v, ok := r.values[column]
	return ok && v != ""
}

// Get retorna el valor crudo de la columna, "" si está ausente.
func (r *Row) Get(column string) string {
	return strings.TrimSpace(r.values[column])
}

// GetBool interpreta la columna como booleano (true/false, 1/0, yes/no, si/no).
func (r *Row) GetBool(column string) bool {
	switch strings.ToLower(r.Get(column)) {
	case "true", "1", "yes", "si", "sí":
		return true
	}
	return false
}

// GetInt64 interpreta la columna como entero; ok=false si está ausente o no parsea.
func (r *Row) GetInt64(column string) (int64, bool) {
	if !r.Has(column) {
		return 0, false
	}
	n, err := strconv.ParseInt(r.Get(column), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// GetTime interpreta la columna como fecha/hora UTC; ok=false si está ausente
// o no coincide con ningún formato aceptado.
func (r *Row) GetTime(column string) (time.Time, bool) {
	if !r.Has(column) {
		return time.Time{}, false
	}
	raw := r.Get(column)
	for _, layout := range rowTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
