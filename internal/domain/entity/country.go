package entity

// Country dato de referencia de país (snapshot inmutable durante un run de importación).
type Country struct {
	ID                 int64
	Name               string
	TwoLetterISOCode   string
	ThreeLetterISOCode string
	Published          bool
}

// StateProvince dato de referencia de departamento/estado, asociado a un país.
type StateProvince struct {
	ID           int64
	CountryID    int64
	Name         string
	Abbreviation string
	Published    bool
}
