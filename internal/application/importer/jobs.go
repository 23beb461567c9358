package importer

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Importador-api/internal/domain"
	"github.com/jhoicas/Importador-api/pkg/logger"
)

// Estados de un job de importación.
const (
	JobStatusRunning  = "running"
	JobStatusFinished = "finished"
	JobStatusFailed   = "failed"
)

// RunOptions parámetros de un run lanzado como job.
type RunOptions struct {
	FilePath string
	Settings Settings
}

// RunnerFunc ejecuta un run completo; la inyecta quien arma el motor
// (normalmente construye un Engine por archivo y llama Run).
type RunnerFunc func(ctx context.Context, opts RunOptions) (*Result, error)

// Job estado observable de un run en curso o terminado.
type Job struct {
	ID           string    `json:"id"`
	FilePath     string    `json:"file_path"`
	Status       string    `json:"status"`
	StartedOnUTC time.Time `json:"started_on_utc"`
	Error        string    `json:"error,omitempty"`
	Result       *Result   `json:"result,omitempty"`

	cancel context.CancelFunc
}

// JobManager registra y supervisa jobs de importación. Cada job corre en su
// propia goroutine; el aborto es cooperativo vía cancelación de contexto y el
// motor lo sondea en el límite de cada lote.
type JobManager struct {
	mu   sync.Mutex
	jobs map[string]*Job
	run  RunnerFunc
	log  *logger.Logger
}

// NewJobManager construye el gestor.
func NewJobManager(run RunnerFunc, log *logger.Logger) *JobManager {
	return &JobManager{
		jobs: map[string]*Job{},
		run:  run,
		log:  log,
	}
}

// Start lanza un job nuevo y retorna su snapshot inicial. Solo puede haber
// un run en curso: dos runs simultáneos competirían por el conjunto de
// números de cliente asignados.
func (m *JobManager) Start(opts RunOptions) (*Job, error) {
	ctx, cancel := context.WithCancel(context.Background())
	job := &Job{
		ID:           uuid.NewString(),
		FilePath:     opts.FilePath,
		Status:       JobStatusRunning,
		StartedOnUTC: time.Now().UTC(),
		cancel:       cancel,
	}
	m.mu.Lock()
	for _, j := range m.jobs {
		if j.Status == JobStatusRunning {
			m.mu.Unlock()
			cancel()
			return nil, domain.ErrJobRunning
		}
	}
	m.jobs[job.ID] = job
	m.mu.Unlock()

	go func() {
		defer cancel()
		log := m.log.ForRun(job.ID)
		log.Info().Str("archivo", opts.FilePath).Msg("importación lanzada")
		res, err := m.run(ctx, opts)

		m.mu.Lock()
		defer m.mu.Unlock()
		if err != nil {
			job.Status = JobStatusFailed
			job.Error = err.Error()
			log.Error().Err(err).Msg("importación falló al arrancar")
			return
		}
		job.Status = JobStatusFinished
		job.Result = res
		log.Info().Int("errores_fase", len(res.PhaseErrors)).Msg("importación terminada")
	}()

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot(job), nil
}

// Get retorna el snapshot del job.
func (m *JobManager) Get(id string) (*Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	return m.snapshot(job), nil
}

// Abort solicita el aborto cooperativo del job; el lote en vuelo termina.
func (m *JobManager) Abort(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[id]
	if !ok {
		return domain.ErrJobNotFound
	}
	job.cancel()
	return nil
}

// snapshot copia el job para lecturas fuera del lock; llamar con el lock tomado.
func (m *JobManager) snapshot(job *Job) *Job {
	snap := *job
	snap.cancel = nil
	return &snap
}
