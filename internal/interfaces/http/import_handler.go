package http

import (
	"errors"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/Importador-api/internal/application/dto"
	"github.com/jhoicas/Importador-api/internal/application/importer"
	"github.com/jhoicas/Importador-api/internal/domain"
	"github.com/jhoicas/Importador-api/internal/domain/repository"
)

// ImportHandler maneja las peticiones HTTP de jobs de importación (protegido).
type ImportHandler struct {
	jobs      *importer.JobManager
	customers repository.CustomerRepository
	defaults  importer.Settings
	validate  *validator.Validate
}

// NewImportHandler construye el handler. defaults son las opciones de run
// tomadas de la configuración del servicio.
func NewImportHandler(jobs *importer.JobManager, customers repository.CustomerRepository, defaults importer.Settings) *ImportHandler {
	return &ImportHandler{jobs: jobs, customers: customers, defaults: defaults, validate: validator.New()}
}

// Start lanza una importación sobre un archivo ya presente en el servidor y
// responde 202 con el snapshot inicial del job.
func (h *ImportHandler) Start(c *fiber.Ctx) error {
	var in dto.StartImportRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	if _, err := os.Stat(in.FilePath); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "FILE_NOT_FOUND", Message: "archivo no encontrado en el servidor"})
	}

	settings := in.ToSettings(h.defaults)
	if err := settings.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	// Los campos de contraseña de quien lanza la importación nunca se
	// sobreescriben desde el archivo; se fija su email como fila protegida.
	if guid := GetUserID(c); guid != "" {
		initiator, err := h.customers.GetByGUID(c.Context(), guid)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		if initiator != nil {
			settings.CurrentCustomerEmail = initiator.Email
		}
	}

	job, err := h.jobs.Start(importer.RunOptions{FilePath: in.FilePath, Settings: settings})
	if err != nil {
		if errors.Is(err, domain.ErrJobRunning) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "JOB_RUNNING", Message: "ya hay una importación en curso"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusAccepted).JSON(dto.FromJob(job))
}

// Get devuelve el estado (y el resultado, si terminó) de un job.
func (h *ImportHandler) Get(c *fiber.Ctx) error {
	job, err := h.jobs.Get(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "job no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.FromJob(job))
}

// Abort solicita el aborto cooperativo del job; el lote en vuelo termina.
func (h *ImportHandler) Abort(c *fiber.Ctx) error {
	if err := h.jobs.Abort(c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "job no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"message": "aborto solicitado"})
}
