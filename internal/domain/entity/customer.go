package entity

import (
	"strconv"
	"time"
)

// Nombres de sistema de los roles de cliente relevantes para la importación.
const (
	RoleSystemNameGuests          = "Guests"
	RoleSystemNameRegistered      = "Registered"
	RoleSystemNameForumModerators = "ForumModerators"
	RoleSystemNameAdministrators  = "Administrators"
)

// Formatos de contraseña aceptados en filas de importación.
const (
	PasswordFormatClear  = "clear"
	PasswordFormatHashed = "hashed"
)

// Customer representa un cliente de la tienda. El ID es interno (bigserial);
// CustomerGUID es el identificador estable que se expone hacia afuera.
type Customer struct {
	ID                  int64
	CustomerGUID        string
	Username            string
	Email               string
	Password            string
	PasswordFormat      string
	PasswordSalt        string
	AdminComment        string
	IsTaxExempt         bool
	AffiliateID         int64 // 0 = sin afiliado
	Active              bool
	IsSystemAccount     bool
	SystemName          string
	CreatedOnUTC        time.Time
	LastActivityDateUTC time.Time

	BillingAddressID  int64
	ShippingAddressID int64

	// Colecciones cargadas bajo demanda por el repositorio.
	Addresses []*Address
	Roles     []*CustomerRole
}

// DisplayName devuelve el nombre legible del cliente: email si existe,
// si no el ID interno como cadena.
func (c *Customer) DisplayName() string {
	if c.Email != "" {
		return c.Email
	}
	return strconv.FormatInt(c.ID, 10)
}

// HasRole indica si el cliente tiene asignado el rol con ese system name.
// Requiere que Roles esté cargado.
func (c *Customer) HasRole(systemName string) bool {
	for _, r := range c.Roles {
		if r.SystemName == systemName {
			return true
		}
	}
	return false
}

// AddRole agrega el rol si no está presente.
func (c *Customer) AddRole(role *CustomerRole) {
	if role == nil || c.HasRole(role.SystemName) {
		return
	}
	c.Roles = append(c.Roles, role)
}

// RemoveRole quita el rol si está presente.
func (c *Customer) RemoveRole(systemName string) {
	for i, r := range c.Roles {
		if r.SystemName == systemName {
			c.Roles = append(c.Roles[:i], c.Roles[i+1:]...)
			return
		}
	}
}
