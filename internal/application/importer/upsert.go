package importer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Importador-api/internal/domain/entity"
	"golang.org/x/crypto/bcrypt"
)

// roleFlagColumns columnas booleanas de rol sincronizadas por membresía de
// conjunto: presente-y-true agrega, presente-y-false quita. El rol de
// administrador nunca se aplica (solo se registra).
var roleFlagColumns = []struct {
	column     string
	systemName string
}{
	{"IsGuest", entity.RoleSystemNameGuests},
	{"IsRegistered", entity.RoleSystemNameRegistered},
	{"IsForumModerator", entity.RoleSystemNameForumModerators},
}

// processCustomers es la fase 1 del lote: resuelve identidad, aplica columnas
// y persiste inserts y updates como una sola unidad (corre dentro de la
// transacción del TxRunner). Retorna el último insertado y el último
// actualizado del lote para la notificación best-effort.
func (e *Engine) processCustomers(ctx context.Context, repos Repos, batch []*Row, res *Result) (lastInserted, lastUpdated *entity.Customer, err error) {
	now := time.Now().UTC()
	var toInsert, toUpdate []*entity.Customer

	for _, row := range batch {
		customer, err := e.resolveCustomer(ctx, repos.Customers, row)
		if err != nil {
			return nil, nil, fmt.Errorf("fila %d: %w", row.Position, err)
		}

		if customer == nil {
			if e.settings.UpdateOnly {
				row.IsTransient = true
				res.SkippedRecords++
				res.addInfo(row.Position, "", "sin coincidencia por campos clave y el run es solo-actualizar; fila omitida")
				continue
			}
			customer = &entity.Customer{
				CustomerGUID:        uuid.NewString(),
				Active:              true,
				AffiliateID:         0,
				CreatedOnUTC:        now,
				LastActivityDateUTC: now,
			}
			row.IsNew = true
		}

		// Las cuentas de sistema nunca se importan.
		if customer.IsSystemAccount || row.GetBool("IsSystemAccount") {
			row.IsTransient = true
			res.SkippedRecords++
			res.addInfo(row.Position, "IsSystemAccount", "cuenta de sistema; fila omitida")
			continue
		}

		if !row.IsNew {
			if err := repos.Customers.LoadRoles(ctx, customer); err != nil {
				return nil, nil, fmt.Errorf("fila %d: cargar roles: %w", row.Position, err)
			}
		}

		secured := e.settings.CurrentCustomerEmail != "" &&
			strings.EqualFold(row.Get("Email"), e.settings.CurrentCustomerEmail)
		if secured && (row.Has("Password") || row.Has("PasswordFormat") || row.Has("PasswordSalt")) {
			res.addInfo(row.Position, "Password",
				"la fila pertenece a quien lanzó la importación; los campos de contraseña no se aplican")
		}

		applyBindings(&applyContext{row: row, customer: customer, secured: secured, now: now})

		if err := hashClearPassword(customer); err != nil {
			return nil, nil, fmt.Errorf("fila %d: hashear contraseña: %w", row.Position, err)
		}

		// Timestamps: por defecto la hora del run cuando la columna falta.
		if t, ok := row.GetTime("CreatedOnUtc"); ok {
			customer.CreatedOnUTC = t
		} else if customer.CreatedOnUTC.IsZero() {
			customer.CreatedOnUTC = now
		}
		if t, ok := row.GetTime("LastActivityDateUtc"); ok {
			customer.LastActivityDateUTC = t
		} else if customer.LastActivityDateUTC.IsZero() {
			customer.LastActivityDateUTC = now
		}

		// Afiliado: solo si el ID existe entre los vigentes; un ID desconocido
		// se ignora en silencio, no es un error.
		if affiliateID, ok := row.GetInt64("AffiliateId"); ok && e.lookups.KnownAffiliate(affiliateID) {
			customer.AffiliateID = affiliateID
		}

		e.syncRoleFlags(row, customer, res)

		row.Customer = customer
		if row.IsNew {
			toInsert = append(toInsert, customer)
		} else {
			toUpdate = append(toUpdate, customer)
		}
	}

	inserted, err := repos.Customers.InsertBatch(ctx, toInsert)
	if err != nil {
		return nil, nil, fmt.Errorf("insertar clientes: %w", err)
	}
	updated, err := repos.Customers.UpdateBatch(ctx, toUpdate)
	if err != nil {
		return nil, nil, fmt.Errorf("actualizar clientes: %w", err)
	}

	// El mapping de roles requiere los IDs ya asignados por el insert.
	for _, row := range batch {
		if row.Customer == nil || row.IsTransient {
			continue
		}
		if err := repos.Customers.SaveRoles(ctx, row.Customer); err != nil {
			return nil, nil, fmt.Errorf("fila %d: guardar roles: %w", row.Position, err)
		}
	}

	res.NewRecords += inserted
	res.ModifiedRecords += updated

	if len(toInsert) > 0 {
		lastInserted = toInsert[len(toInsert)-1]
	}
	if len(toUpdate) > 0 {
		lastUpdated = toUpdate[len(toUpdate)-1]
	}
	return lastInserted, lastUpdated, nil
}

// syncRoleFlags sincroniza la membresía de roles según las columnas de flags.
func (e *Engine) syncRoleFlags(row *Row, customer *entity.Customer, res *Result) {
	for _, rf := range roleFlagColumns {
		if !row.Has(rf.column) {
			continue
		}
		role, ok := e.lookups.Role(rf.systemName)
		if !ok {
			continue
		}
		if row.GetBool(rf.column) {
			customer.AddRole(role)
		} else {
			customer.RemoveRole(rf.systemName)
		}
	}
	if row.Has("IsAdministrator") {
		res.addInfo(row.Position, "IsAdministrator",
			"el rol de administrador nunca se asigna desde la importación; columna ignorada")
	}
}

// hashClearPassword hashea con bcrypt las contraseñas que llegan en claro.
// Las que ya vienen hasheadas conservan su salt y formato.
func hashClearPassword(customer *entity.Customer) error {
	if customer.Password == "" || customer.PasswordFormat != entity.PasswordFormatClear {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(customer.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	customer.Password = string(hash)
	customer.PasswordFormat = entity.PasswordFormatHashed
	customer.PasswordSalt = ""
	return nil
}
