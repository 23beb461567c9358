package importer

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Importador-api/internal/domain/entity"
	"github.com/jhoicas/Importador-api/internal/domain/repository"
)

// ambiguousID marca un código que aparece más de una vez en los datos de
// referencia: resolverlo no produce resultado.
const ambiguousID = int64(-1)

// Lookups son los snapshots de datos de referencia construidos una vez por
// run. Ningún componente los muta después de construidos.
type Lookups struct {
	countriesByTwoLetter   map[string]int64 // código en minúscula → country id
	countriesByThreeLetter map[string]int64
	statesByCountry        map[int64]map[string]int64 // country id → abreviatura → state id
	rolesBySystemName      map[string]*entity.CustomerRole
	affiliates             map[int64]struct{}
}

// BuildLookups enumera los proveedores de referencia y arma los snapshots.
func BuildLookups(
	ctx context.Context,
	countries repository.CountryRepository,
	states repository.StateProvinceRepository,
	roles repository.CustomerRoleRepository,
	affiliates repository.AffiliateRepository,
) (*Lookups, error) {
	l := &Lookups{
		countriesByTwoLetter:   map[string]int64{},
		countriesByThreeLetter: map[string]int64{},
		statesByCountry:        map[int64]map[string]int64{},
		rolesBySystemName:      map[string]*entity.CustomerRole{},
		affiliates:             map[int64]struct{}{},
	}

	countryList, err := countries.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar países: %w", err)
	}
	for _, c := range countryList {
		putCode(l.countriesByTwoLetter, c.TwoLetterISOCode, c.ID)
		putCode(l.countriesByThreeLetter, c.ThreeLetterISOCode, c.ID)
	}

	stateList, err := states.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar departamentos: %w", err)
	}
	for _, s := range stateList {
		byAbbr := l.statesByCountry[s.CountryID]
		if byAbbr == nil {
			byAbbr = map[string]int64{}
			l.statesByCountry[s.CountryID] = byAbbr
		}
		putCode(byAbbr, s.Abbreviation, s.ID)
	}

	roleList, err := roles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar roles: %w", err)
	}
	for _, r := range roleList {
		l.rolesBySystemName[r.SystemName] = r
	}

	affiliateIDs, err := affiliates.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar afiliados: %w", err)
	}
	for _, id := range affiliateIDs {
		l.affiliates[id] = struct{}{}
	}

	return l, nil
}

// putCode registra un código en minúscula; un duplicado lo vuelve ambiguo.
func putCode(m map[string]int64, code string, id int64) {
	key := strings.ToLower(strings.TrimSpace(code))
	if key == "" {
		return
	}
	if _, exists := m[key]; exists {
		m[key] = ambiguousID
		return
	}
	m[key] = id
}

// CountryIDByCode resuelve un código ISO de 2 o 3 letras (sin distinguir
// mayúsculas) al ID del país. Códigos ambiguos o no coincidentes no resuelven.
func (l *Lookups) CountryIDByCode(code string) (int64, bool) {
	key := strings.ToLower(strings.TrimSpace(code))
	var id int64
	var ok bool
	switch len(key) {
	case 2:
		id, ok = l.countriesByTwoLetter[key]
	case 3:
		id, ok = l.countriesByThreeLetter[key]
	default:
		return 0, false
	}
	if !ok || id == ambiguousID {
		return 0, false
	}
	return id, true
}

// StateProvinceIDByAbbr resuelve la abreviatura de un departamento dentro de un país.
func (l *Lookups) StateProvinceIDByAbbr(countryID int64, abbr string) (int64, bool) {
	byAbbr := l.statesByCountry[countryID]
	if byAbbr == nil {
		return 0, false
	}
	id, ok := byAbbr[strings.ToLower(strings.TrimSpace(abbr))]
	if !ok || id == ambiguousID {
		return 0, false
	}
	return id, true
}

// Role retorna el rol con ese system name.
func (l *Lookups) Role(systemName string) (*entity.CustomerRole, bool) {
	r, ok := l.rolesBySystemName[systemName]
	return r, ok
}

// KnownAffiliate indica si el ID de afiliado existe actualmente.
func (l *Lookups) KnownAffiliate(id int64) bool {
	_, ok := l.affiliates[id]
	return ok
}
