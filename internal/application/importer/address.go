package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Importador-api/internal/domain/entity"
)

// addressRole vincula el prefijo de columnas con el setter del vínculo
// billing/shipping sobre el cliente.
type addressRole struct {
	prefix string
	link   func(c *entity.Customer, id int64)
}

var addressRoles = []addressRole{
	{PrefixBillingAddress, func(c *entity.Customer, id int64) { c.BillingAddressID = id }},
	{PrefixShippingAddress, func(c *entity.Customer, id int64) { c.ShippingAddressID = id }},
}

// processAddresses es la fase 3 del lote: por cada fila sobreviviente arma la
// dirección candidata de cada rol, la deduplica por igualdad de todos los
// campos contra las direcciones del cliente y vincula el resultado. El
// apellido es el campo ancla: si falta, el rol completo se salta. Cliente y
// direcciones se persisten en una transacción por fila, después de procesar
// ambos roles.
func (e *Engine) processAddresses(ctx context.Context, batch []*Row, res *Result) error {
	now := time.Now().UTC()
	for _, row := range batch {
		customer := row.Customer

		if err := e.repos.Customers.LoadAddresses(ctx, customer); err != nil {
			return fmt.Errorf("fila %d: cargar direcciones: %w", row.Position, err)
		}

		var chosen []struct {
			role    addressRole
			address *entity.Address
		}
		for _, role := range addressRoles {
			if !e.source.HasColumn(role.prefix + ".LastName") {
				continue
			}
			if row.Get(role.prefix+".LastName") == "" {
				continue
			}
			candidate := e.buildAddress(row, role.prefix, now)
			address := findEqualAddress(customer.Addresses, candidate)
			if address == nil {
				address = candidate
				customer.Addresses = append(customer.Addresses, candidate)
			}
			chosen = append(chosen, struct {
				role    addressRole
				address *entity.Address
			}{role, address})
		}
		if len(chosen) == 0 {
			continue
		}

		err := e.tx.Run(ctx, func(repos Repos) error {
			// Primero insertar las direcciones nuevas para tener sus IDs.
			if err := repos.Customers.SaveAddresses(ctx, customer); err != nil {
				return err
			}
			for _, ch := range chosen {
				ch.role.link(customer, ch.address.ID)
			}
			return repos.Customers.Update(ctx, customer)
		})
		if err != nil {
			return fmt.Errorf("fila %d: persistir direcciones: %w", row.Position, err)
		}
	}
	return nil
}

// buildAddress arma la dirección candidata desde las columnas con prefijo del
// rol, resolviendo país y departamento vía lookups.
func (e *Engine) buildAddress(row *Row, prefix string, now time.Time) *entity.Address {
	get := func(suffix string) string { return row.Get(prefix + "." + suffix) }

	address := &entity.Address{
		FirstName:     get("FirstName"),
		LastName:      get("LastName"),
		Email:         get("Email"),
		Company:       get("Company"),
		City:          get("City"),
		Address1:      get("Address1"),
		Address2:      get("Address2"),
		ZipPostalCode: get("ZipPostalCode"),
		PhoneNumber:   get("PhoneNumber"),
		FaxNumber:     get("FaxNumber"),
		CreatedOnUTC:  now,
	}
	if countryID, ok := e.lookups.CountryIDByCode(get("CountryCode")); ok {
		address.CountryID = countryID
		if stateID, ok := e.lookups.StateProvinceIDByAbbr(countryID, get("StateAbbreviation")); ok {
			address.StateProvinceID = stateID
		}
	}
	return address
}

// findEqualAddress busca una dirección estructuralmente igual en el conjunto.
func findEqualAddress(addresses []*entity.Address, candidate *entity.Address) *entity.Address {
	for _, a := range addresses {
		if a.ContentEquals(candidate) {
			return a
		}
	}
	return nil
}
