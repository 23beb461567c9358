package importer

import (
	"time"

	"github.com/jhoicas/Importador-api/internal/domain/entity"
)

// applyContext estado por fila mientras se aplican columnas sobre el cliente.
type applyContext struct {
	row      *Row
	customer *entity.Customer
	// secured: la fila corresponde a quien lanzó la importación; sus campos
	// de contraseña nunca se aplican desde el archivo.
	secured bool
	now     time.Time
}

// fieldBinding vincula una columna del origen con el setter del campo del
// cliente. when (opcional) condiciona la aplicación. La tabla se evalúa en
// orden fijo y una columna ausente deja el valor actual intacto.
type fieldBinding struct {
	column string
	when   func(*applyContext) bool
	apply  func(*applyContext, string)
}

func notSecured(c *applyContext) bool { return !c.secured }

// customerBindings tabla estática columna → campo. Reemplaza el mapeo
// dinámico por reflexión conservando la semántica de actualización parcial.
var customerBindings = []fieldBinding{
	{column: "CustomerGuid", apply: func(c *applyContext, v string) { c.customer.CustomerGUID = v }},
	{column: "Username", apply: func(c *applyContext, v string) { c.customer.Username = v }},
	{column: "Email", apply: func(c *applyContext, v string) { c.customer.Email = v }},
	{column: "Password", when: notSecured, apply: func(c *applyContext, v string) { c.customer.Password = v }},
	{column: "PasswordFormat", when: notSecured, apply: func(c *applyContext, v string) { c.customer.PasswordFormat = v }},
	{column: "PasswordSalt", when: notSecured, apply: func(c *applyContext, v string) { c.customer.PasswordSalt = v }},
	{column: "AdminComment", apply: func(c *applyContext, v string) { c.customer.AdminComment = v }},
	{column: "IsTaxExempt", apply: func(c *applyContext, v string) { c.customer.IsTaxExempt = c.row.GetBool("IsTaxExempt") }},
	{column: "IsActive", apply: func(c *applyContext, v string) { c.customer.Active = c.row.GetBool("IsActive") }},
}

// applyBindings aplica la tabla sobre el cliente: solo columnas presentes en
// la fila, solo bindings cuya condición pase.
func applyBindings(c *applyContext) {
	for _, b := range customerBindings {
		if !c.row.Has(b.column) {
			continue
		}
		if b.when != nil && !b.when(c) {
			continue
		}
		b.apply(c, c.row.Get(b.column))
	}
}
