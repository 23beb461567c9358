package entity

// Grupo de claves de atributos genéricos de cliente.
const AttributeKeyGroupCustomer = "Customer"

// Claves de atributos genéricos que la importación conoce.
const (
	AttrFirstName       = "FirstName"
	AttrLastName        = "LastName"
	AttrGender          = "Gender"
	AttrDateOfBirth     = "DateOfBirth"
	AttrCompany         = "Company"
	AttrStreetAddress   = "StreetAddress"
	AttrStreetAddress2  = "StreetAddress2"
	AttrZipPostalCode   = "ZipPostalCode"
	AttrCity            = "City"
	AttrCountryID       = "CountryId"
	AttrStateProvinceID = "StateProvinceId"
	AttrPhone           = "Phone"
	AttrFax             = "Fax"
	AttrVatNumber       = "VatNumber"
	AttrTimeZoneID      = "TimeZoneId"
	AttrCustomerNumber  = "CustomerNumber"
	AttrForumPostCount  = "ForumPostCount"
	AttrSignature       = "Signature"
	AttrAvatarPictureID = "AvatarPictureId"
)

// GenericAttribute es un hecho clave-valor auxiliar de una entidad.
// Un valor lógico por (entidad, grupo, clave); re-guardar sobrescribe.
type GenericAttribute struct {
	ID       int64
	EntityID int64
	KeyGroup string
	Key      string
	Value    string
}
