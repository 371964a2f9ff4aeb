package outcome

import (
	"strings"

	"github.com/agentstation/cbxmatch/pkg/constants"
	"github.com/agentstation/cbxmatch/pkg/records"
)

// Values returns the analysis columns of o in AnalysisHeaders order. Blank
// cells are empty strings. Entity columns (cbx_*) are blank unless the
// entity is shown; an unmatched record only carries its own columns.
func (o MatchOutcome) Values() []any {
	values := make([]any, len(AnalysisHeaders))
	for i, h := range AnalysisHeaders {
		values[i] = o.value(h)
	}
	return values
}

// Value returns the analysis column named name, or nil for an unknown name.
func (o MatchOutcome) Value(name string) any {
	for _, h := range AnalysisHeaders {
		if h == name {
			return o.value(name)
		}
	}
	return nil
}

func (o MatchOutcome) value(name string) any {
	switch name {
	case "hc_contractor_summary":
		return o.Summary
	case "analysis":
		return o.Analysis
	case "generic_domain":
		return o.GenericDomain
	case "match_count":
		return o.MatchCount
	case "match_count_with_hc":
		return o.MatchCountWithHC
	case "create_in_cbx":
		return o.Create
	case "action":
		return o.Action.String()
	case "index":
		return o.Index + 1
	}

	e := o.Decision.Entity()
	if e == nil || (!o.ShowEntity && strings.HasPrefix(name, "cbx_")) {
		return ""
	}
	return o.entityValue(name, e)
}

func (o MatchOutcome) entityValue(name string, e *records.RegistryEntity) any {
	c := o.Decision.Candidate
	switch name {
	case "cbx_id":
		return e.ID
	case "cbx_contractor":
		return e.DisplayName()
	case "cbx_street":
		return e.Address
	case "cbx_city":
		return e.City
	case "cbx_state":
		return e.State
	case "cbx_zip":
		return e.PostalCode
	case "cbx_country":
		return e.Country
	case "cbx_expiration_date":
		if o.Expiration == nil {
			return ""
		}
		return o.Expiration.Format(constants.ExpirationDateOutput)
	case "registration_status":
		return e.RegistrationStatus
	case "suspended":
		return e.Suspended
	case "cbx_email":
		return e.Email
	case "cbx_first_name":
		return e.FirstName
	case "cbx_last_name":
		return e.LastName
	case "modules":
		return strings.Join(e.Modules, o.ListSeparator)
	case "cbx_account_type":
		return e.AccountType
	case "cbx_subscription_fee":
		return e.SubscriptionPrice(o.Currency)
	case "cbx_employee_price":
		return e.EmployeePrice(o.Currency)
	case "parents":
		return e.Parents
	case "previous":
		return e.OldNames
	case "hiring_client_names":
		return e.HiringClientNames
	case "hiring_client_count":
		return e.RelationshipCount()
	case "is_in_relationship":
		return o.Relationship.InRelationship
	case "is_qualified":
		return o.Relationship.Qualified()
	case "ratio_company":
		return c.NameScore
	case "ratio_address":
		return c.AddressScore
	case "contact_match":
		return c.ContactMatch
	case "cbx_assessment_level":
		return e.AssessmentLevel
	case "new_product":
		return e.NewProduct
	case "is_subscription_upgrade":
		return o.Upgrade.Needed
	case "upgrade_price":
		if !o.Upgrade.Needed {
			return ""
		}
		return o.Upgrade.Price
	case "prorated_upgrade_price":
		if !o.Upgrade.Needed {
			return ""
		}
		return o.Upgrade.Prorated
	}
	return ""
}
