package records

import (
	"fmt"
	"strings"

	"github.com/agentstation/cbxmatch/pkg/errors"
)

// RegistryHeaders are the expected CBX export columns, in order.
var RegistryHeaders = []string{
	"id", "name_fr", "name_en", "old_names", "address", "city", "state", "country", "postal_code",
	"first_name", "last_name", "email", "cbx_expiration_date", "registration_code", "suspended",
	"modules", "access_modes", "code", "subscription_price_cad", "employee_price_cad",
	"subscription_price_usd", "employee_price_usd", "hiring_client_names",
	"hiring_client_ids", "hiring_client_qstatus", "parents", "assessment_level", "new_product",
}

// Registration statuses of a registry entity.
const (
	StatusActive    = "Active"
	StatusSuspended = "Suspended"
	StatusNonMember = "Non Member"
)

// Relationship links a registry entity to one hiring client.
type Relationship struct {
	Name   string
	ID     string
	Status string
}

// RegistryEntity is one business unit of the CBX registry.
type RegistryEntity struct {
	ID                   int64
	NameFR               string
	NameEN               string
	OldNames             string
	Address              string
	City                 string
	State                string
	Country              string
	PostalCode           string
	FirstName            string
	LastName             string
	Email                string
	ExpirationDate       string
	RegistrationStatus   string
	Suspended            string
	Modules              []string
	AccessModes          string
	AccountType          string
	SubscriptionPriceCAD float64
	EmployeePriceCAD     float64
	SubscriptionPriceUSD float64
	EmployeePriceUSD     float64
	Relationships        []Relationship
	Parents              string
	AssessmentLevel      string
	NewProduct           string

	// HiringClientNames is the relationship name cell as exported.
	HiringClientNames string
}

// ParseRegistryEntity builds an entity from one export row. line is the
// zero-based data row used in diagnostics. Relationship lists of different
// lengths are padded with empty strings and reported as warnings; an id
// that is not an integer is a fatal *errors.DataError.
func ParseRegistryEntity(line int, cells []string, sep string) (RegistryEntity, errors.Warnings, error) {
	var warnings errors.Warnings
	cell := func(i int) string {
		if i < len(cells) {
			return strings.TrimSpace(cells[i])
		}
		return ""
	}

	id, err := ParseID(cell(0))
	if err != nil {
		return RegistryEntity{}, nil, &errors.DataError{Row: line, Field: "id", Value: cell(0), Message: "registry id is not an integer", Err: err}
	}

	amount := func(i int) float64 {
		v, err := ParseAmount(cell(i))
		if err != nil {
			warnings.Add(errors.NewDataWarning(line, RegistryHeaders[i], cell(i), "not a number, using 0"))
			return 0
		}
		return v
	}

	e := RegistryEntity{
		ID:                   id,
		NameFR:               cell(1),
		NameEN:               cell(2),
		OldNames:             cell(3),
		Address:              cell(4),
		City:                 cell(5),
		State:                cell(6),
		Country:              cell(7),
		PostalCode:           cell(8),
		FirstName:            cell(9),
		LastName:             cell(10),
		Email:                cell(11),
		ExpirationDate:       cell(12),
		RegistrationStatus:   cell(13),
		Suspended:            cell(14),
		Modules:              splitNonEmpty(cell(15), sep),
		AccessModes:          cell(16),
		AccountType:          cell(17),
		SubscriptionPriceCAD: amount(18),
		EmployeePriceCAD:     amount(19),
		SubscriptionPriceUSD: amount(20),
		EmployeePriceUSD:     amount(21),
		HiringClientNames:    cell(22),
		Parents:              cell(25),
		AssessmentLevel:      cell(26),
		NewProduct:           cell(27),
	}

	rels, mismatch := zipRelationships(split(cell(22), sep), split(cell(23), sep), split(cell(24), sep))
	e.Relationships = rels
	if mismatch != "" {
		warnings.Add(errors.NewDataWarning(line, "hiring_client_names", fmt.Sprint(id), mismatch))
	}
	return e, warnings, nil
}

// zipRelationships pairs the parallel name, id and status lists, padding the
// shorter ones. A non-empty message describes any length mismatch.
func zipRelationships(names, ids, statuses []string) ([]Relationship, string) {
	n := max(len(names), len(ids), len(statuses))
	if n == 0 {
		return nil, ""
	}
	at := func(list []string, i int) string {
		if i < len(list) {
			return strings.TrimSpace(list[i])
		}
		return ""
	}
	rels := make([]Relationship, n)
	for i := range rels {
		rels[i] = Relationship{Name: at(names, i), ID: at(ids, i), Status: at(statuses, i)}
	}
	if len(names) != n || len(ids) != n || len(statuses) != n {
		return rels, fmt.Sprintf("relationship list length mismatch: %d names, %d ids, %d statuses; padded to %d",
			len(names), len(ids), len(statuses), n)
	}
	return rels, ""
}

func split(cell, sep string) []string {
	if cell == "" {
		return nil
	}
	return strings.Split(cell, sep)
}

func splitNonEmpty(cell, sep string) []string {
	var out []string
	for _, s := range split(cell, sep) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// DisplayName is the French name, or the English name when there is none.
func (e RegistryEntity) DisplayName() string {
	if e.NameFR != "" {
		return e.NameFR
	}
	return e.NameEN
}

// RelationshipNames returns the hiring-client names, in registry order.
func (e RegistryEntity) RelationshipNames() []string {
	names := make([]string, 0, len(e.Relationships))
	for _, r := range e.Relationships {
		names = append(names, r.Name)
	}
	return names
}

// RelationshipCount is the number of hiring clients the entity works for.
func (e RegistryEntity) RelationshipCount() int {
	n := 0
	for _, r := range e.Relationships {
		if r.Name != "" {
			n++
		}
	}
	return n
}

// ModuleCount is the number of modules the entity subscribes to.
func (e RegistryEntity) ModuleCount() int { return len(e.Modules) }

// SubscriptionPrice is the subscription price in the given currency.
// Anything but CAD is priced in USD.
func (e RegistryEntity) SubscriptionPrice(currency string) float64 {
	if strings.EqualFold(currency, CurrencyCAD) {
		return e.SubscriptionPriceCAD
	}
	return e.SubscriptionPriceUSD
}

// EmployeePrice is the per-employee price in the given currency.
func (e RegistryEntity) EmployeePrice(currency string) float64 {
	if strings.EqualFold(currency, CurrencyCAD) {
		return e.EmployeePriceCAD
	}
	return e.EmployeePriceUSD
}

// Summary is a one-line description used in audit trails.
func (e RegistryEntity) Summary() string {
	return fmt.Sprintf("%d, %s, %s, %s, %s, %s, %s, %s, %s %s",
		e.ID, e.NameEN, e.Address, e.City, e.State, e.PostalCode, e.Country, e.Email, e.FirstName, e.LastName)
}
