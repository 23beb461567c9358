package importer

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/Importador-api/internal/domain/entity"
)

// processAttributes es la fase 2 del lote: proyecta los atributos clave-valor
// de cada fila sobreviviente. Los writes de cada fila hacen commit
// independiente (repos atados al pool) para acotar el radio de una falla.
func (e *Engine) processAttributes(ctx context.Context, batch []*Row, res *Result) error {
	for _, row := range batch {
		if err := e.projectRowAttributes(ctx, row, res); err != nil {
			return fmt.Errorf("fila %d: %w", row.Position, err)
		}
	}
	return nil
}

func (e *Engine) projectRowAttributes(ctx context.Context, row *Row, res *Result) error {
	customer := row.Customer
	f := e.settings.Features

	save := func(column, key string) error {
		if !row.Has(column) {
			return nil
		}
		return e.repos.Attributes.Save(ctx, customer.ID, entity.AttributeKeyGroupCustomer, key, row.Get(column))
	}

	// Núcleo fijo: siempre se proyecta.
	if err := save("FirstName", entity.AttrFirstName); err != nil {
		return err
	}
	if err := save("LastName", entity.AttrLastName); err != nil {
		return err
	}

	// Conjunto configurable, gobernado por los feature flags.
	gated := []struct {
		enabled bool
		column  string
		key     string
	}{
		{f.Gender, "Gender", entity.AttrGender},
		{f.DateOfBirth, "DateOfBirth", entity.AttrDateOfBirth},
		{f.Company, "Company", entity.AttrCompany},
		{f.StreetAddress, "StreetAddress", entity.AttrStreetAddress},
		{f.StreetAddress2, "StreetAddress2", entity.AttrStreetAddress2},
		{f.ZipPostalCode, "ZipPostalCode", entity.AttrZipPostalCode},
		{f.City, "City", entity.AttrCity},
		{f.Phone, "Phone", entity.AttrPhone},
		{f.Fax, "Fax", entity.AttrFax},
		{f.VatNumber, "VatNumber", entity.AttrVatNumber},
		{f.TimeZone, "TimeZoneId", entity.AttrTimeZoneID},
		{f.Forums, "ForumPostCount", entity.AttrForumPostCount},
		{f.Forums, "Signature", entity.AttrSignature},
	}
	for _, g := range gated {
		if !g.enabled {
			continue
		}
		if err := save(g.column, g.key); err != nil {
			return err
		}
	}

	// País y departamento se resuelven vía lookups; un código que no resuelve
	// omite el atributo en silencio.
	if f.Country && row.Has("CountryCode") {
		if countryID, ok := e.lookups.CountryIDByCode(row.Get("CountryCode")); ok {
			if err := e.repos.Attributes.Save(ctx, customer.ID, entity.AttributeKeyGroupCustomer,
				entity.AttrCountryID, strconv.FormatInt(countryID, 10)); err != nil {
				return err
			}
			if f.StateProvince && row.Has("StateAbbreviation") {
				if stateID, ok := e.lookups.StateProvinceIDByAbbr(countryID, row.Get("StateAbbreviation")); ok {
					if err := e.repos.Attributes.Save(ctx, customer.ID, entity.AttributeKeyGroupCustomer,
						entity.AttrStateProvinceID, strconv.FormatInt(stateID, 10)); err != nil {
						return err
					}
				}
			}
		}
	}

	if err := e.assignCustomerNumber(ctx, row); err != nil {
		return err
	}

	if e.settings.AvatarsEnabled {
		if err := e.importAvatar(ctx, row, res); err != nil {
			return err
		}
	}
	return nil
}

// assignCustomerNumber persiste el número de cliente según la política de
// numeración. El número se guarda solo si es vacío o no figura aún en el
// conjunto de números conocidos del run; el conjunto se alimenta
// secuencialmente, así el primero de dos duplicados manuales gana.
func (e *Engine) assignCustomerNumber(ctx context.Context, row *Row) error {
	var number string
	if e.settings.AutomaticNumbering {
		number = strconv.FormatInt(row.Customer.ID, 10)
	} else {
		number = row.Get("CustomerNumber")
	}

	if number != "" && e.isKnownNumber(number) {
		return nil
	}
	if err := e.repos.Attributes.Save(ctx, row.Customer.ID, entity.AttributeKeyGroupCustomer,
		entity.AttrCustomerNumber, number); err != nil {
		return err
	}
	if number != "" {
		e.rememberNumber(number)
	}
	return nil
}

func (e *Engine) isKnownNumber(number string) bool {
	_, ok := e.knownNumbers[strings.ToLower(number)]
	return ok
}

func (e *Engine) rememberNumber(number string) {
	e.knownNumbers[strings.ToLower(number)] = struct{}{}
}
