// Package records defines the two input record types of a matching run: the
// contractors submitted by a hiring client and the entities of the CBX
// registry, together with the cell-level parsing both need.
package records

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/agentstation/cbxmatch/pkg/errors"
	"github.com/agentstation/cbxmatch/pkg/normalize"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// HiringClientHeaders are the expected hiring-client columns, in order.
var HiringClientHeaders = []string{
	"contractor_name", "contact_first_name", "contact_last_name", "contact_email", "contact_phone",
	"contact_language", "address", "city", "province_state_iso2", "country_iso2",
	"postal_code", "category", "description", "phone", "extension", "fax", "website", "language",
	"is_take_over", "qualification_expiration_date", "qualification_status", "batch",
	"questionnaire_name", "questionnaire_id", "pricing_group_id", "pricing_group_code",
	"hiring_client_name", "hiring_client_id", "is_association_fee", "base_subscription_fee",
	"contact_currency", "agent_in_charge_id", "take_over_follow-up_date", "renewal_date",
	"information_shared", "contact_timezone", "do_not_match", "force_cbx_id", "ambiguous",
	"contractorcheck_account", "assessment_level",
}

// Supported contact currencies.
const (
	CurrencyCAD = "CAD"
	CurrencyUSD = "USD"
)

// HiringClientRecord is one contractor submitted by a hiring client. Cells
// are kept as text so they can be written back unchanged; flag and amount
// cells are interpreted through methods.
type HiringClientRecord struct {
	// Index is the zero-based position of the record in its input sheet.
	Index int

	Company                     string
	FirstName                   string
	LastName                    string
	Email                       string
	ContactPhone                string
	ContactLanguage             string
	Street                      string
	City                        string
	State                       string
	Country                     string
	PostalCode                  string
	Category                    string
	Description                 string
	Phone                       string
	Extension                   string
	Fax                         string
	Website                     string
	Language                    string
	IsTakeOver                  string
	QualificationExpirationDate string
	QualificationStatus         string
	Batch                       string
	QuestionnaireName           string
	QuestionnaireID             string
	PricingGroupID              string
	PricingGroupCode            string
	HiringClientName            string
	HiringClientID              string
	IsAssociationFee            string
	BaseSubscriptionFee         string
	Currency                    string
	AgentInChargeID             string
	TakeOverFollowUpDate        string
	RenewalDate                 string
	InformationShared           string
	Timezone                    string
	DoNotMatch                  string
	ForceCBXID                  string
	Ambiguous                   string
	ContractorCheckAccount      string
	AssessmentLevel             string

	// Metadata holds opaque trailing columns, in input order.
	Metadata []string
}

// fields returns pointers to the cells in HiringClientHeaders order.
func (r *HiringClientRecord) fields() []*string {
	return []*string{
		&r.Company, &r.FirstName, &r.LastName, &r.Email, &r.ContactPhone,
		&r.ContactLanguage, &r.Street, &r.City, &r.State, &r.Country,
		&r.PostalCode, &r.Category, &r.Description, &r.Phone, &r.Extension, &r.Fax, &r.Website, &r.Language,
		&r.IsTakeOver, &r.QualificationExpirationDate, &r.QualificationStatus, &r.Batch,
		&r.QuestionnaireName, &r.QuestionnaireID, &r.PricingGroupID, &r.PricingGroupCode,
		&r.HiringClientName, &r.HiringClientID, &r.IsAssociationFee, &r.BaseSubscriptionFee,
		&r.Currency, &r.AgentInChargeID, &r.TakeOverFollowUpDate, &r.RenewalDate,
		&r.InformationShared, &r.Timezone, &r.DoNotMatch, &r.ForceCBXID, &r.Ambiguous,
		&r.ContractorCheckAccount, &r.AssessmentLevel,
	}
}

// NewHiringClientRecord builds a record from the cells of one row. Missing
// trailing cells are empty; cells beyond the known columns are ignored.
func NewHiringClientRecord(index int, cells []string) HiringClientRecord {
	r := HiringClientRecord{Index: index}
	for i, f := range r.fields() {
		if i < len(cells) {
			*f = cells[i]
		}
	}
	return r
}

// Values returns the cells in HiringClientHeaders order.
func (r HiringClientRecord) Values() []string {
	fields := r.fields()
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = *f
	}
	return out
}

// Normalize cleans the record in place: cells are trimmed, the company and
// street are put in composed form, the contact phone is split into digits and
// extension (and copied to phone when that is empty), languages are
// lower-cased and country, state and currency upper-cased.
func (r *HiringClientRecord) Normalize() {
	for _, f := range r.fields() {
		*f = strings.TrimSpace(*f)
	}
	r.Company = normalize.NFC(r.Company)
	r.Street = normalize.NFC(r.Street)

	number, ext := SplitPhone(r.ContactPhone)
	r.ContactPhone = number
	if r.ContactPhone != "" && r.Phone == "" {
		r.Phone = r.ContactPhone
		r.Extension = ext
	}
	r.Extension = digits(r.Extension)

	r.Language = strings.ToLower(r.Language)
	r.ContactLanguage = strings.ToLower(r.ContactLanguage)
	r.Country = strings.ToUpper(r.Country)
	r.State = strings.ToUpper(r.State)
	r.Currency = strings.ToUpper(r.Currency)
}

// CheckCurrency returns a *errors.DataError when the currency is not CAD, USD
// or empty, and a *errors.DataWarning when it does not fit the country
// (Canada bills in CAD, everywhere else in USD).
func (r HiringClientRecord) CheckCurrency() error {
	currency := strings.ToUpper(strings.TrimSpace(r.Currency))
	if err := validate.Var(currency, "omitempty,oneof=CAD USD"); err != nil {
		return errors.NewDataError(r.Index, "contact_currency", r.Currency,
			fmt.Sprintf("invalid currency, must be %s or %s", CurrencyCAD, CurrencyUSD))
	}
	country := strings.ToUpper(strings.TrimSpace(r.Country))
	switch {
	case currency == "" || country == "":
		return nil
	case country == "CA" && currency != CurrencyCAD:
		return errors.NewDataWarning(r.Index, "contact_currency", r.Currency, "currency and country mismatch, expected CAD for CA")
	case country != "CA" && currency != CurrencyUSD:
		return errors.NewDataWarning(r.Index, "contact_currency", r.Currency, "currency and country mismatch, expected USD for "+country)
	}
	return nil
}

// TakeOver reports whether the record is flagged as a take-over.
func (r HiringClientRecord) TakeOver() bool { return SmartBool(r.IsTakeOver) }

// AssociationFee reports whether the hiring client charges an association fee.
func (r HiringClientRecord) AssociationFee() bool { return SmartBool(r.IsAssociationFee) }

// SkipMatching reports whether the record must not be matched against the registry.
func (r HiringClientRecord) SkipMatching() bool { return SmartBool(r.DoNotMatch) }

// MarkedAmbiguous reports whether the submitter flagged the record as ambiguous.
func (r HiringClientRecord) MarkedAmbiguous() bool { return SmartBool(r.Ambiguous) }

// BaseFee returns the hiring client's base subscription fee.
func (r HiringClientRecord) BaseFee() (float64, error) {
	return ParseAmount(r.BaseSubscriptionFee)
}

// MandatoryProvided reports whether every field needed to create the
// contractor is present. The state is only required in Canada and the US.
func (r HiringClientRecord) MandatoryProvided() bool {
	required := []string{r.Company, r.FirstName, r.LastName, r.Email, r.ContactPhone, r.Street, r.City, r.PostalCode}
	for _, v := range required {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	switch strings.ToLower(strings.TrimSpace(r.Country)) {
	case "ca", "us":
		return strings.TrimSpace(r.State) != ""
	}
	return true
}

// Summary is a one-line description used in the analysis columns.
func (r HiringClientRecord) Summary() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s %s",
		r.Company, r.Street, r.City, r.State, r.Country, r.PostalCode, r.Email, r.FirstName, r.LastName)
}
