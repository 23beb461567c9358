package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/jhoicas/Importador-api/internal/application/importer"
)

var _ importer.RowSource = (*CSVRowSource)(nil)

// CSVRowSource adapta un archivo CSV al contrato de origen de filas: la
// primera fila es el encabezado que declara las columnas del dataset; el
// resto se entrega en lotes de tamaño fijo, de forma perezosa y no
// reiniciable. Una celda vacía se trata como columna ausente en esa fila.
type CSVRowSource struct {
	file      *os.File
	reader    *csv.Reader
	columns   map[string]int // nombre → índice
	batchSize int
	total     int
	position  int // última fila entregada (1-based)
	exhausted bool
}

// NewCSVRowSource abre el archivo, lee el encabezado y cuenta las filas en
// una pasada previa (el total se reporta antes de procesar).
func NewCSVRowSource(path string, batchSize int) (*CSVRowSource, error) {
	if batchSize <= 0 {
		batchSize = 100
	}

	total, err := countDataRows(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir %s: %w", path, err)
	}
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerar filas cortas; las celdas faltantes son ausentes

	header, err := r.Read()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("leer encabezado de %s: %w", path, err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}

	return &CSVRowSource{
		file:      f,
		reader:    r,
		columns:   columns,
		batchSize: batchSize,
		total:     total,
	}, nil
}

// TotalRows total de filas de datos del archivo (sin el encabezado).
func (s *CSVRowSource) TotalRows() int { return s.total }

// HasColumn indica si el encabezado declara la columna.
func (s *CSVRowSource) HasColumn(name string) bool {
	_, ok := s.columns[name]
	return ok
}

// NextBatch lee el siguiente lote de filas; vacío cuando el archivo se agota.
func (s *CSVRowSource) NextBatch(ctx context.Context) ([]*importer.Row, error) {
	if s.exhausted {
		return nil, nil
	}
	batch := make([]*importer.Row, 0, s.batchSize)
	for len(batch) < s.batchSize {
		if err := ctx.Err(); err != nil {
			return batch, err
		}
		record, err := s.reader.Read()
		if err == io.EOF {
			s.exhausted = true
			break
		}
		if err != nil {
			return batch, fmt.Errorf("leer fila %d: %w", s.position+1, err)
		}
		s.position++
		values := map[string]string{}
		for name, idx := range s.columns {
			if idx < len(record) && record[idx] != "" {
				values[name] = record[idx]
			}
		}
		batch = append(batch, importer.NewRow(s.position, values))
	}
	return batch, nil
}

// Close libera el archivo.
func (s *CSVRowSource) Close() error {
	return s.file.Close()
}

// countDataRows cuenta las filas de datos en una pasada independiente.
func countDataRows(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("abrir %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	count := -1 // descuenta el encabezado
	for {
		if _, err := r.Read(); err == io.EOF {
			break
		} else if err != nil {
			return 0, fmt.Errorf("contar filas de %s: %w", path, err)
		}
		count++
	}
	if count < 0 {
		count = 0
	}
	return count, nil
}
