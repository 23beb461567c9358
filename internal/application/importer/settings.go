package importer

import (
	"fmt"

	"github.com/jhoicas/Importador-api/internal/domain"
)

// Campos clave soportados para la resolución de identidad, en el orden en que
// la configuración los puede listar.
const (
	KeyFieldID       = "Id"
	KeyFieldGUID     = "CustomerGuid"
	KeyFieldEmail    = "Email"
	KeyFieldUsername = "Username"
)

// Prefijos de las columnas de dirección por rol.
const (
	PrefixBillingAddress  = "BillingAddress"
	PrefixShippingAddress = "ShippingAddress"
)

// Features activa o desactiva la proyección de atributos opcionales.
type Features struct {
	Gender         bool
	DateOfBirth    bool
	Company        bool
	StreetAddress  bool
	StreetAddress2 bool
	ZipPostalCode  bool
	City           bool
	Country        bool
	StateProvince  bool
	Phone          bool
	Fax            bool
	VatNumber      bool
	TimeZone       bool
	Forums         bool
}

// AllFeatures retorna el conjunto con todo habilitado.
func AllFeatures() Features {
	return Features{
		Gender: true, DateOfBirth: true, Company: true,
		StreetAddress: true, StreetAddress2: true, ZipPostalCode: true,
		City: true, Country: true, StateProvince: true,
		Phone: true, Fax: true, VatNumber: true, TimeZone: true,
		Forums: true,
	}
}

// Settings parametriza un run de importación completo.
type Settings struct {
	// KeyFields orden de campos para resolver identidad; subconjunto de
	// {Id, CustomerGuid, Email, Username}.
	KeyFields []string
	BatchSize int
	// UpdateOnly rechaza filas sin coincidencia en vez de crear clientes.
	UpdateOnly bool
	// CurrentCustomerEmail email de quien lanzó la importación; sus campos de
	// contraseña nunca se aplican desde el archivo.
	CurrentCustomerEmail string
	// AutomaticNumbering true = el número de cliente es el ID propio;
	// false = se toma de la columna CustomerNumber.
	AutomaticNumbering bool
	AvatarsEnabled     bool
	AvatarDownloadDir  string
	Features           Features
}

// DefaultSettings valores por defecto de un run.
func DefaultSettings() Settings {
	return Settings{
		KeyFields:          []string{KeyFieldEmail, KeyFieldUsername},
		BatchSize:          100,
		AutomaticNumbering: true,
		Features:           AllFeatures(),
	}
}

// Validate verifica que la configuración sea coherente.
func (s Settings) Validate() error {
	if len(s.KeyFields) == 0 {
		return fmt.Errorf("%w: se requiere al menos un campo clave", domain.ErrInvalidInput)
	}
	for _, f := range s.KeyFields {
		switch f {
		case KeyFieldID, KeyFieldGUID, KeyFieldEmail, KeyFieldUsername:
		default:
			return fmt.Errorf("%w: campo clave desconocido %q", domain.ErrInvalidInput, f)
		}
	}
	if s.BatchSize <= 0 {
		return fmt.Errorf("%w: batch size debe ser positivo", domain.ErrInvalidInput)
	}
	return nil
}
