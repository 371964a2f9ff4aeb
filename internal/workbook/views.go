package workbook

import (
	"slices"
	"strings"

	"github.com/agentstation/cbxmatch/pkg/action"
)

// Derived sheet names.
const (
	SheetAll                 = "all"
	SheetDataToImport        = "Data to import"
	SheetExistingContractors = "Existing Contractors"
	SheetHubSpot             = "Data for HS"
)

// ImportHeaders are the columns of the import sheet, in order.
var ImportHeaders = []string{
	"contractor_name", "contact_first_name", "contact_last_name", "contact_email", "contact_phone",
	"contact_language", "address", "city", "province_state_iso2", "country_iso2",
	"postal_code", "description", "phone", "extension", "fax", "website", "language",
	"qualification_expiration_date", "qualification_status", "contact_currency",
	"agent_in_charge_id", "renewal_date", "information_shared", "contact_timezone",
	"questionnaire_name", "questionnaire_ids", "pricing_group_code", "pricing_group_id",
	"hiring_client_id", "contractorcheck_account", "assessment_level",
}

// HubSpotHeaders are the columns of the CRM sheet, in order.
var HubSpotHeaders = []string{
	"contractor_name", "contact_first_name", "contact_last_name", "contact_email", "contact_phone",
	"contact_language", "address", "city", "province_state_iso2", "country_iso2",
	"postal_code", "cbx_id", "cbx_expiration_date", "questionnaire_name",
	"questionnaire_id", "hiring_client_name", "hiring_client_id", "action",
}

// column is one output column taken from the full row.
type column struct {
	header string
	source int
}

// view is a sheet showing a subset of rows and columns.
type view struct {
	name    string
	columns []column
	include func(action.Action) bool
}

// projection selects the columns of full whose header is listed in wanted.
// With loose matching a header also selects the first wanted name that
// contains it, so questionnaire_id fills questionnaire_ids. Columns keep
// the order of full.
func projection(full, wanted []string, loose bool) []column {
	var cols []column
	for i, h := range full {
		switch {
		case slices.Contains(wanted, h):
			cols = append(cols, column{header: h, source: i})
		case loose:
			for _, w := range wanted {
				if strings.Contains(w, h) {
					cols = append(cols, column{header: w, source: i})
					break
				}
			}
		}
	}
	return cols
}

// swap exchanges the positions of the columns named a and b.
func swap(cols []column, a, b string) {
	i := slices.IndexFunc(cols, func(c column) bool { return c.header == a })
	j := slices.IndexFunc(cols, func(c column) bool { return c.header == b })
	if i >= 0 && j >= 0 {
		cols[i], cols[j] = cols[j], cols[i]
	}
}

// views returns every sheet of the workbook for the given full headers.
func views(full, metadata []string) []view {
	identity := make([]column, len(full))
	for i, h := range full {
		identity[i] = column{header: h, source: i}
	}
	everything := func(action.Action) bool { return true }

	out := []view{{name: SheetAll, columns: identity, include: everything}}
	for _, a := range action.All() {
		out = append(out, view{
			name:    a.String(),
			columns: identity,
			include: func(got action.Action) bool { return got == a },
		})
	}

	imports := projection(full, append(slices.Clone(ImportHeaders), metadata...), true)
	swap(imports, "pricing_group_id", "pricing_group_code")
	existing := projection(full, append([]string{"cbx_id"}, append(slices.Clone(ImportHeaders), metadata...)...), true)
	hubspot := projection(full, append(slices.Clone(HubSpotHeaders), metadata...), false)

	return append(out,
		view{
			name:    SheetDataToImport,
			columns: imports,
			include: func(a action.Action) bool { return a == action.AddQuestionnaire },
		},
		view{
			name:    SheetExistingContractors,
			columns: existing,
			include: func(a action.Action) bool { return a != action.Onboarding && a != action.MissingInfo },
		},
		view{name: SheetHubSpot, columns: hubspot, include: everything},
	)
}
