package outcome

// AnalysisHeaders are the columns appended to every hiring-client row, in
// output order.
var AnalysisHeaders = []string{
	"cbx_id", "hc_contractor_summary", "analysis",
	"cbx_contractor", "cbx_street", "cbx_city", "cbx_state", "cbx_zip", "cbx_country",
	"cbx_expiration_date", "registration_status", "suspended",
	"cbx_email", "cbx_first_name", "cbx_last_name",
	"modules", "cbx_account_type", "cbx_subscription_fee", "cbx_employee_price",
	"parents", "previous", "hiring_client_names", "hiring_client_count",
	"is_in_relationship", "is_qualified", "ratio_company", "ratio_address", "contact_match",
	"cbx_assessment_level", "new_product", "generic_domain",
	"match_count", "match_count_with_hc",
	"is_subscription_upgrade", "upgrade_price", "prorated_upgrade_price",
	"create_in_cbx", "action", "index",
}

// Column positions used when rows are routed into views.
var (
	ColumnCBXID      = column("cbx_id")
	ColumnAnalysis   = column("analysis")
	ColumnSummary    = column("hc_contractor_summary")
	ColumnExpiration = column("cbx_expiration_date")
	ColumnAction     = column("action")
	ColumnIndex      = column("index")
)

func column(name string) int {
	for i, h := range AnalysisHeaders {
		if h == name {
			return i
		}
	}
	panic("outcome: unknown analysis column " + name)
}
