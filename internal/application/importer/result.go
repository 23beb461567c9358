package importer

import "time"

// Nombres de las fases del pipeline por lote.
const (
	PhaseUpsert     = "upsert"
	PhaseAttributes = "attributes"
	PhaseAddresses  = "addresses"
	PhaseRead       = "read"
)

// MessageLevel severidad de un mensaje de diagnóstico por fila.
type MessageLevel string

const (
	LevelInfo MessageLevel = "info"
	LevelWarn MessageLevel = "warn"
)

// Message diagnóstico asociado a una fila (y opcionalmente a una columna).
type Message struct {
	Row    int          `json:"row"`
	Column string       `json:"column,omitempty"`
	Level  MessageLevel `json:"level"`
	Text   string       `json:"text"`
}

// PhaseError falla capturada en el borde de una fase; nunca aborta el run.
type PhaseError struct {
	Batch   int    `json:"batch"`
	Phase   string `json:"phase"`
	Message string `json:"message"`
}

// Result resumen de un run de importación: contadores, diagnósticos en orden
// y errores por fase. Un run siempre termina con un Result, incluso con
// fallas parciales.
type Result struct {
	TotalRecords    int `json:"total_records"`
	NewRecords      int `json:"new_records"`
	ModifiedRecords int `json:"modified_records"`
	SkippedRecords  int `json:"skipped_records"`

	Messages    []Message    `json:"messages,omitempty"`
	PhaseErrors []PhaseError `json:"phase_errors,omitempty"`

	StartedOnUTC  time.Time `json:"started_on_utc"`
	FinishedOnUTC time.Time `json:"finished_on_utc"`
	Aborted       bool      `json:"aborted"`
}

func (r *Result) addInfo(row int, column, text string) {
	r.Messages = append(r.Messages, Message{Row: row, Column: column, Level: LevelInfo, Text: text})
}

func (r *Result) addWarn(row int, column, text string) {
	r.Messages = append(r.Messages, Message{Row: row, Column: column, Level: LevelWarn, Text: text})
}

func (r *Result) addPhaseError(batch int, phase string, err error) {
	r.PhaseErrors = append(r.PhaseErrors, PhaseError{Batch: batch, Phase: phase, Message: err.Error()})
}

// HasErrors indica si alguna fase reportó fallas.
func (r *Result) HasErrors() bool {
	return len(r.PhaseErrors) > 0
}
