package dto

import (
	"github.com/jhoicas/Importador-api/internal/application/importer"
)

// StartImportRequest body para POST /api/imports.
type StartImportRequest struct {
	// FilePath ruta del archivo CSV ya presente en el servidor.
	FilePath string `json:"file_path" validate:"required"`
	// KeyFields orden de resolución de identidad; vacío usa el default.
	KeyFields  []string `json:"key_fields,omitempty" validate:"omitempty,dive,oneof=Id CustomerGuid Email Username"`
	BatchSize  int      `json:"batch_size,omitempty" validate:"omitempty,min=1,max=10000"`
	UpdateOnly bool     `json:"update_only,omitempty"`
	// AutomaticNumber nil conserva el default de configuración.
	AutomaticNumber *bool `json:"automatic_number,omitempty"`
	AvatarsEnabled  *bool `json:"avatars_enabled,omitempty"`
}

// ToSettings traduce la request a la configuración del motor partiendo de los
// defaults dados (los de configuración del servicio).
func (r StartImportRequest) ToSettings(base importer.Settings) importer.Settings {
	s := base
	if len(r.KeyFields) > 0 {
		s.KeyFields = r.KeyFields
	}
	if r.BatchSize > 0 {
		s.BatchSize = r.BatchSize
	}
	s.UpdateOnly = r.UpdateOnly
	if r.AutomaticNumber != nil {
		s.AutomaticNumbering = *r.AutomaticNumber
	}
	if r.AvatarsEnabled != nil {
		s.AvatarsEnabled = *r.AvatarsEnabled
	}
	return s
}

// ImportJobResponse respuesta de POST /api/imports y GET /api/imports/:id.
type ImportJobResponse struct {
	ID           string           `json:"id"`
	FilePath     string           `json:"file_path"`
	Status       string           `json:"status"`
	StartedOnUTC string           `json:"started_on_utc"`
	Error        string           `json:"error,omitempty"`
	Result       *importer.Result `json:"result,omitempty"`
}

// FromJob arma la respuesta a partir del snapshot del job.
func FromJob(job *importer.Job) ImportJobResponse {
	return ImportJobResponse{
		ID:           job.ID,
		FilePath:     job.FilePath,
		Status:       job.Status,
		StartedOnUTC: job.StartedOnUTC.UTC().Format("2006-01-02T15:04:05Z07:00"),
		Error:        job.Error,
		Result:       job.Result,
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token emitido al autenticarse.
type LoginResponse struct {
	Token string `json:"token"`
}
