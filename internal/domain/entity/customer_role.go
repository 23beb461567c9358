package entity

// CustomerRole es un rol asignable a clientes (Guests, Registered, ...).
// La membresía es un conjunto: se agrega o se quita, nunca se ordena.
type CustomerRole struct {
	ID           int64
	Name         string
	SystemName   string
	Active       bool
	IsSystemRole bool
}
