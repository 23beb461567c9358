package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Importador-api/internal/application/auth"
	"github.com/jhoicas/Importador-api/internal/application/importer"
	"github.com/jhoicas/Importador-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	Jobs            *importer.JobManager
	Customers       repository.CustomerRepository
	DefaultSettings importer.Settings
	JWTSecret       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token con rol admin)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireRole("admin"))

	// Imports (protegido)
	imports := protected.Group("/imports")
	importHandler := NewImportHandler(deps.Jobs, deps.Customers, deps.DefaultSettings)
	imports.Post("/", importHandler.Start)
	imports.Get("/:id", importHandler.Get)
	imports.Post("/:id/abort", importHandler.Abort)
}
