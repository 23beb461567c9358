package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Importador-api/internal/application/dto"
	"github.com/jhoicas/Importador-api/internal/application/importer"
	"github.com/jhoicas/Importador-api/internal/domain/entity"
	"github.com/jhoicas/Importador-api/internal/domain/repository"
	apphttp "github.com/jhoicas/Importador-api/internal/interfaces/http"
	"github.com/jhoicas/Importador-api/pkg/logger"
)

// fakeCustomers stub del repositorio: solo implementa la búsqueda por GUID
// que usa el handler para resolver al operador.
type fakeCustomers struct {
	repository.CustomerRepository
	initiator *entity.Customer
}

func (f *fakeCustomers) GetByGUID(_ context.Context, guid string) (*entity.Customer, error) {
	if f.initiator != nil && f.initiator.CustomerGUID == guid {
		return f.initiator, nil
	}
	return nil, nil
}

// buildImportApp arma la app con el router real, un runner capturador y el
// operador admin de prueba.
func buildImportApp(t *testing.T) (*fiber.App, *importer.RunOptions) {
	t.Helper()
	var captured importer.RunOptions
	runner := func(ctx context.Context, opts importer.RunOptions) (*importer.Result, error) {
		captured = opts
		return &importer.Result{TotalRecords: 1, NewRecords: 1}, nil
	}
	jobs := importer.NewJobManager(runner, logger.Nop())

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Jobs: jobs,
		Customers: &fakeCustomers{initiator: &entity.Customer{
			CustomerGUID: testUserID,
			Email:        "admin@tienda.co",
		}},
		DefaultSettings: importer.DefaultSettings(),
		JWTSecret:       testJWTSecret,
	})
	return app, &captured
}

func postJSON(t *testing.T, app *fiber.App, path, token, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestImports_SinTokenRetorna401(t *testing.T) {
	app, _ := buildImportApp(t)
	resp := postJSON(t, app, "/api/imports/", "", `{"file_path":"x.csv"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestImports_ArchivoInexistenteRetorna400(t *testing.T) {
	app, _ := buildImportApp(t)
	resp := postJSON(t, app, "/api/imports/", tokenForRole(t, "admin"),
		`{"file_path":"/no/existe/clientes.csv"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestImports_StartYConsulta(t *testing.T) {
	app, captured := buildImportApp(t)

	// Archivo real en disco: el handler valida su existencia.
	path := filepath.Join(t.TempDir(), "clientes.csv")
	require.NoError(t, os.WriteFile(path, []byte("Email\na@x.co\n"), 0o644))

	body, err := json.Marshal(map[string]any{
		"file_path":   path,
		"batch_size":  50,
		"update_only": true,
	})
	require.NoError(t, err)

	resp := postJSON(t, app, "/api/imports/", tokenForRole(t, "admin"), string(body))
	defer resp.Body.Close()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	var job dto.ImportJobResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&job))
	assert.NotEmpty(t, job.ID)
	assert.Equal(t, path, job.FilePath)

	// El job termina y expone el resultado en el GET.
	deadline := time.Now().Add(2 * time.Second)
	for {
		req := httptest.NewRequest(http.MethodGet, "/api/imports/"+job.ID, nil)
		req.Header.Set("Authorization", tokenForRole(t, "admin"))
		getResp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, getResp.StatusCode)
		require.NoError(t, json.NewDecoder(getResp.Body).Decode(&job))
		getResp.Body.Close()
		if job.Status != importer.JobStatusRunning {
			break
		}
		require.True(t, time.Now().Before(deadline), "el job no terminó a tiempo")
		time.Sleep(5 * time.Millisecond)
	}
	assert.Equal(t, importer.JobStatusFinished, job.Status)
	require.NotNil(t, job.Result)
	assert.Equal(t, 1, job.Result.NewRecords)

	// Opciones del run: overrides del body + email del operador como fila protegida.
	assert.Equal(t, 50, captured.Settings.BatchSize)
	assert.True(t, captured.Settings.UpdateOnly)
	assert.Equal(t, "admin@tienda.co", captured.Settings.CurrentCustomerEmail)
}

func TestImports_GetJobDesconocidoRetorna404(t *testing.T) {
	app, _ := buildImportApp(t)
	req := httptest.NewRequest(http.MethodGet, "/api/imports/no-existe", nil)
	req.Header.Set("Authorization", tokenForRole(t, "admin"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestImports_AbortJobDesconocidoRetorna404(t *testing.T) {
	app, _ := buildImportApp(t)
	resp := postJSON(t, app, "/api/imports/no-existe/abort", tokenForRole(t, "admin"), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
