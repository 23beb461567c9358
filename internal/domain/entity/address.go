package entity

import "time"

// Address es un objeto de valor postal perteneciente a un Customer.
// El mismo registro puede estar referenciado como dirección de facturación
// y de envío a la vez; nunca se duplica.
type Address struct {
	ID              int64
	FirstName       string
	LastName        string
	Email           string
	Company         string
	CountryID       int64 // 0 = sin país
	StateProvinceID int64 // 0 = sin departamento/estado
	City            string
	Address1        string
	Address2        string
	ZipPostalCode   string
	PhoneNumber     string
	FaxNumber       string
	CreatedOnUTC    time.Time
}

// ContentEquals compara dos direcciones campo a campo (sin ID ni fecha).
// Es el criterio de deduplicación al importar.
func (a *Address) ContentEquals(b *Address) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.FirstName == b.FirstName &&
		a.LastName == b.LastName &&
		a.Email == b.Email &&
		a.Company == b.Company &&
		a.CountryID == b.CountryID &&
		a.StateProvinceID == b.StateProvinceID &&
		a.City == b.City &&
		a.Address1 == b.Address1 &&
		a.Address2 == b.Address2 &&
		a.ZipPostalCode == b.ZipPostalCode &&
		a.PhoneNumber == b.PhoneNumber &&
		a.FaxNumber == b.FaxNumber
}
