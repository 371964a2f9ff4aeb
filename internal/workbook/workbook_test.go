package workbook

import (
	"context"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/agentstation/cbxmatch/pkg/action"
	"github.com/agentstation/cbxmatch/pkg/outcome"
	"github.com/agentstation/cbxmatch/pkg/records"
)

func testRows() []Row {
	row := func(i int, name string, a action.Action) Row {
		rec := records.HiringClientRecord{
			Index:            i,
			Company:          name,
			QuestionnaireID:  "Q-7",
			PricingGroupID:   "42",
			PricingGroupCode: "PG-STD",
			HiringClientName: "Hydro Quebec",
			Metadata:         []string{"East"},
		}
		return Row{Record: rec, Outcome: outcome.MatchOutcome{Index: i, Action: a, Create: a == action.Onboarding}}
	}
	return []Row{
		row(0, "Acme", action.AddQuestionnaire),
		row(1, "Beta", action.Onboarding),
		row(2, "Gamma", action.MissingInfo),
	}
}

func writeAndOpen(t *testing.T, metadata []string, rows []Row) *excelize.File {
	t.Helper()
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, Write(context.Background(), path, metadata, rows))
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestSheets(t *testing.T) {
	f := writeAndOpen(t, []string{"metadata_region"}, testRows())

	want := []string{SheetAll}
	for _, a := range action.All() {
		want = append(want, a.String())
	}
	want = append(want, SheetDataToImport, SheetExistingContractors, SheetHubSpot)
	assert.Equal(t, want, f.GetSheetList())
}

func TestAllSheet(t *testing.T) {
	f := writeAndOpen(t, []string{"metadata_region"}, testRows())

	rows, err := f.GetRows(SheetAll)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, Headers([]string{"metadata_region"}), rows[0])

	actionCol := len(records.HiringClientHeaders) + outcome.ColumnAction
	assert.Equal(t, "add_questionnaire", rows[1][actionCol])
	assert.Equal(t, "Acme", rows[1][0])
	assert.Equal(t, "East", rows[1][len(rows[0])-1], "metadata is moved after the analysis columns")
}

func TestActionSheets(t *testing.T) {
	f := writeAndOpen(t, nil, testRows())

	tests := []struct {
		sheet string
		want  []string
	}{
		{action.Onboarding.String(), []string{"Beta"}},
		{action.MissingInfo.String(), []string{"Gamma"}},
		{action.AddQuestionnaire.String(), []string{"Acme"}},
		{action.ReOnboarding.String(), nil},
		{SheetExistingContractors, []string{"Acme"}},
		{SheetHubSpot, []string{"Acme", "Beta", "Gamma"}},
		{SheetDataToImport, []string{"Acme"}},
	}
	for _, tt := range tests {
		t.Run(tt.sheet, func(t *testing.T) {
			rows, err := f.GetRows(tt.sheet)
			require.NoError(t, err)
			require.NotEmpty(t, rows)
			name := slices.Index(rows[0], "contractor_name")
			require.GreaterOrEqual(t, name, 0)

			var got []string
			for _, r := range rows[1:] {
				if name < len(r) && r[name] != "" {
					got = append(got, r[name])
				}
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestImportSheet(t *testing.T) {
	f := writeAndOpen(t, []string{"metadata_region"}, testRows())

	rows, err := f.GetRows(SheetDataToImport)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	headers := rows[0]
	assert.ElementsMatch(t, append(slices.Clone(ImportHeaders), "metadata_region"), headers)

	code := slices.Index(headers, "pricing_group_code")
	id := slices.Index(headers, "pricing_group_id")
	assert.Less(t, code, id, "pricing group code comes before its id")
	assert.Equal(t, "PG-STD", rows[1][code])
	assert.Equal(t, "42", rows[1][id])
	assert.Equal(t, "Q-7", rows[1][slices.Index(headers, "questionnaire_ids")])
}

func TestHubSpotAndExistingHeaders(t *testing.T) {
	f := writeAndOpen(t, nil, testRows())

	hs, err := f.GetRows(SheetHubSpot)
	require.NoError(t, err)
	assert.ElementsMatch(t, HubSpotHeaders, hs[0])

	existing, err := f.GetRows(SheetExistingContractors)
	require.NoError(t, err)
	assert.ElementsMatch(t, append([]string{"cbx_id"}, ImportHeaders...), existing[0])
}

func TestProjection(t *testing.T) {
	full := []string{"other", "questionnaire_id", "misc", "pricing_group_id", "pricing_group_code"}
	wanted := []string{"questionnaire_ids", "pricing_group_code", "pricing_group_id"}

	cols := projection(full, wanted, true)
	swap(cols, "pricing_group_id", "pricing_group_code")
	assert.Equal(t, []column{
		{header: "questionnaire_ids", source: 1},
		{header: "pricing_group_code", source: 4},
		{header: "pricing_group_id", source: 3},
	}, cols)

	assert.Len(t, projection(full, wanted, false), 2)
}

func TestTableName(t *testing.T) {
	assert.Equal(t, "Table_Data_to_import", tableName(SheetDataToImport))
	assert.Equal(t, "Table_follow_up_qualification", tableName("follow-up_qualification"))
}
