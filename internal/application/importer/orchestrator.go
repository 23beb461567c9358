package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Importador-api/internal/domain/entity"
	"github.com/jhoicas/Importador-api/internal/domain/repository"
	"github.com/jhoicas/Importador-api/pkg/logger"
)

// Engine es el motor de importación masiva de clientes. Orquesta el ciclo
//
//	Init → (por lote: leer → upsert → atributos → direcciones) → Done
//
// Un solo worker lógico procesa los lotes en estricto orden; dentro del lote
// las filas van en orden de origen (importa para el conjunto de números
// conocidos y para el "último insertado/actualizado"). Cada fase está
// aislada: su falla se registra contra el lote y el run sigue con la
// siguiente fase o lote; el run nunca aborta por sí mismo.
type Engine struct {
	source     RowSource
	tx         TxRunner
	repos      Repos // atados al pool: commit por operación (fases 2 y 3)
	countries  repository.CountryRepository
	states     repository.StateProvinceRepository
	roles      repository.CustomerRoleRepository
	affiliates repository.AffiliateRepository
	downloader Downloader
	media      MediaService
	notifier   Notifier
	settings   Settings
	log        *logger.Logger

	// Estado confinado al run.
	lookups      *Lookups
	knownNumbers map[string]struct{} // números de cliente asignados, en minúscula
}

// Deps dependencias del motor.
type Deps struct {
	Source     RowSource
	Tx         TxRunner
	Repos      Repos
	Countries  repository.CountryRepository
	States     repository.StateProvinceRepository
	Roles      repository.CustomerRoleRepository
	Affiliates repository.AffiliateRepository
	Downloader Downloader
	Media      MediaService
	Notifier   Notifier
	Settings   Settings
	Log        *logger.Logger
}

// NewEngine construye el motor con todas sus dependencias.
func NewEngine(deps Deps) *Engine {
	return &Engine{
		source:       deps.Source,
		tx:           deps.Tx,
		repos:        deps.Repos,
		countries:    deps.Countries,
		states:       deps.States,
		roles:        deps.Roles,
		affiliates:   deps.Affiliates,
		downloader:   deps.Downloader,
		media:        deps.Media,
		notifier:     deps.Notifier,
		settings:     deps.Settings,
		log:          deps.Log,
		knownNumbers: map[string]struct{}{},
	}
}

// Run ejecuta el run completo. El error de retorno es solo de arranque
// (configuración o construcción de lookups); las fallas de procesamiento
// quedan dentro del Result. El aborto externo se sondea cooperativamente al
// inicio de cada lote: el lote en vuelo siempre termina sus fases.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	if err := e.settings.Validate(); err != nil {
		return nil, err
	}

	res := &Result{
		TotalRecords: e.source.TotalRows(),
		StartedOnUTC: time.Now().UTC(),
	}

	// ═══════════════════════════════════════════════════════════════════════
	// Init: snapshots de referencia y números de cliente ya asignados
	// ═══════════════════════════════════════════════════════════════════════
	lookups, err := BuildLookups(ctx, e.countries, e.states, e.roles, e.affiliates)
	if err != nil {
		return nil, fmt.Errorf("construir lookups: %w", err)
	}
	e.lookups = lookups

	numbers, err := e.repos.Attributes.ListValuesByKey(ctx,
		entity.AttributeKeyGroupCustomer, entity.AttrCustomerNumber)
	if err != nil {
		return nil, fmt.Errorf("cargar números de cliente: %w", err)
	}
	for _, n := range numbers {
		if n != "" {
			e.knownNumbers[strings.ToLower(n)] = struct{}{}
		}
	}

	e.log.Info().
		Int("total_filas", res.TotalRecords).
		Int("batch_size", e.settings.BatchSize).
		Bool("solo_actualizar", e.settings.UpdateOnly).
		Msg("iniciando importación de clientes")

	hasAddressColumns := e.source.HasColumn(PrefixBillingAddress+".LastName") ||
		e.source.HasColumn(PrefixShippingAddress+".LastName")

	batchIndex := 0
	for {
		if ctx.Err() != nil {
			res.Aborted = true
			e.log.Warn().Int("lote", batchIndex).Msg("aborto externo; el run termina en el límite de lote")
			break
		}

		batch, err := e.source.NextBatch(ctx)
		if err != nil {
			// Una cancelación que llega durante la lectura es el mismo aborto
			// cooperativo, no una falla del origen.
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				res.Aborted = true
				e.log.Warn().Int("lote", batchIndex).Msg("aborto externo durante la lectura del lote")
				break
			}
			// El origen no es reiniciable: una falla de lectura cierra el run.
			res.addPhaseError(batchIndex+1, PhaseRead, err)
			break
		}
		if len(batch) == 0 {
			break
		}
		batchIndex++
		e.log.Info().
			Int("lote", batchIndex).
			Int("fila_inicial", batch[0].Position).
			Msg("procesando lote")

		// ═══════════════════════════════════════════════════════════════════
		// Fase 1: upsert de clientes (una transacción por lote)
		// ═══════════════════════════════════════════════════════════════════
		var lastInserted, lastUpdated *entity.Customer
		upsertErr := e.tx.Run(ctx, func(repos Repos) error {
			var err error
			lastInserted, lastUpdated, err = e.processCustomers(ctx, repos, batch, res)
			return err
		})
		if upsertErr != nil {
			res.addPhaseError(batchIndex, PhaseUpsert, upsertErr)
			e.log.Error().Err(upsertErr).Int("lote", batchIndex).Str("fase", PhaseUpsert).Msg("fase fallida")
		} else {
			// Notificación best-effort tras el commit: solo el último
			// representante de cada tipo en el lote.
			if lastInserted != nil {
				e.notifier.CustomerInserted(lastInserted)
			}
			if lastUpdated != nil {
				e.notifier.CustomerUpdated(lastUpdated)
			}
		}

		// Las fases siguientes solo ven filas con entidad persistida y no
		// rechazada. Si el upsert del lote se revirtió, no sobrevive ninguna.
		survivors := survivingRows(batch, upsertErr == nil)

		// ═══════════════════════════════════════════════════════════════════
		// Fase 2: proyección de atributos (commit por fila)
		// ═══════════════════════════════════════════════════════════════════
		if err := e.processAttributes(ctx, survivors, res); err != nil {
			res.addPhaseError(batchIndex, PhaseAttributes, err)
			e.log.Error().Err(err).Int("lote", batchIndex).Str("fase", PhaseAttributes).Msg("fase fallida")
		}

		// ═══════════════════════════════════════════════════════════════════
		// Fase 3: reconciliación de direcciones (solo si el dataset las trae)
		// ═══════════════════════════════════════════════════════════════════
		if hasAddressColumns {
			if err := e.processAddresses(ctx, survivors, res); err != nil {
				res.addPhaseError(batchIndex, PhaseAddresses, err)
				e.log.Error().Err(err).Int("lote", batchIndex).Str("fase", PhaseAddresses).Msg("fase fallida")
			}
		}
	}

	res.FinishedOnUTC = time.Now().UTC()
	e.log.Info().
		Int("total", res.TotalRecords).
		Int("nuevos", res.NewRecords).
		Int("modificados", res.ModifiedRecords).
		Int("omitidos", res.SkippedRecords).
		Int("errores_fase", len(res.PhaseErrors)).
		Bool("abortado", res.Aborted).
		Msg("importación terminada")
	return res, nil
}

// survivingRows filtra las filas que produjeron una entidad persistida y no
// rechazada. committed=false (upsert revertido) no deja sobrevivientes.
func survivingRows(batch []*Row, committed bool) []*Row {
	if !committed {
		return nil
	}
	out := make([]*Row, 0, len(batch))
	for _, row := range batch {
		if row.Customer != nil && !row.IsTransient && row.Customer.ID != 0 {
			out = append(out, row)
		}
	}
	return out
}
