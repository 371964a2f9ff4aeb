package records_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/cbxmatch/pkg/constants"
	"github.com/agentstation/cbxmatch/pkg/errors"
	"github.com/agentstation/cbxmatch/pkg/records"
)

func TestHeaderLengths(t *testing.T) {
	assert.Len(t, records.HiringClientHeaders, constants.HiringClientColumns)
	assert.Len(t, records.RegistryHeaders, constants.RegistryColumns)
	assert.Len(t, records.HiringClientRecord{}.Values(), constants.HiringClientColumns)
}

func TestHiringClientRoundTrip(t *testing.T) {
	cells := make([]string, constants.HiringClientColumns)
	for i := range cells {
		cells[i] = records.HiringClientHeaders[i]
	}
	r := records.NewHiringClientRecord(3, cells)
	assert.Equal(t, 3, r.Index)
	assert.Equal(t, "contractor_name", r.Company)
	assert.Equal(t, "force_cbx_id", r.ForceCBXID)
	assert.Equal(t, "assessment_level", r.AssessmentLevel)
	assert.Equal(t, cells, r.Values())

	short := records.NewHiringClientRecord(0, []string{"Acme"})
	assert.Equal(t, "Acme", short.Company)
	assert.Empty(t, short.AssessmentLevel)
}

func TestSmartBool(t *testing.T) {
	for _, s := range []string{"true", "TRUE", " =true ", "yes", "Vraie", "=vraie", "1"} {
		assert.True(t, records.SmartBool(s), s)
	}
	for _, s := range []string{"", "false", "no", "0", "x", "oui"} {
		assert.False(t, records.SmartBool(s), s)
	}
}

func TestSplitPhone(t *testing.T) {
	tests := []struct {
		raw, number, ext string
	}{
		{"(514) 555-1234", "5145551234", ""},
		{"514-555-1234 ext. 22", "5145551234", "22"},
		{"514 555 1234 x 7", "5145551234", "7"},
		{"514.555.1234 poste 301", "5145551234", "301"},
		{"5145551234,12", "5145551234", "12"},
		{"514-555-1234 P 9", "5145551234", "9"},
		{"", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			number, ext := records.SplitPhone(tt.raw)
			assert.Equal(t, tt.number, number)
			assert.Equal(t, tt.ext, ext)
		})
	}
}

func TestNormalize(t *testing.T) {
	r := records.HiringClientRecord{
		Company:         "  Café Inc ",
		ContactPhone:    "514-555-1234 ext 5",
		Language:        "FR",
		ContactLanguage: "EN",
		Country:         "ca",
		State:           "qc",
		Currency:        "cad",
		Extension:       "",
	}
	r.Normalize()

	assert.Equal(t, "Café Inc", r.Company)
	assert.Equal(t, "5145551234", r.ContactPhone)
	assert.Equal(t, "5145551234", r.Phone)
	assert.Equal(t, "5", r.Extension)
	assert.Equal(t, "fr", r.Language)
	assert.Equal(t, "en", r.ContactLanguage)
	assert.Equal(t, "CA", r.Country)
	assert.Equal(t, "QC", r.State)
	assert.Equal(t, "CAD", r.Currency)

	t.Run("existing phone kept", func(t *testing.T) {
		r := records.HiringClientRecord{ContactPhone: "111 x 2", Phone: "999", Extension: "ext 4"}
		r.Normalize()
		assert.Equal(t, "999", r.Phone)
		assert.Equal(t, "4", r.Extension)
	})
}

func TestCheckCurrency(t *testing.T) {
	tests := []struct {
		name     string
		country  string
		currency string
		fatal    bool
		warning  bool
	}{
		{name: "canada cad", country: "CA", currency: "CAD"},
		{name: "us usd", country: "US", currency: "USD"},
		{name: "empty currency", country: "CA"},
		{name: "empty country", currency: "USD"},
		{name: "canada usd", country: "CA", currency: "USD", warning: true},
		{name: "france cad", country: "FR", currency: "CAD", warning: true},
		{name: "euro", country: "FR", currency: "EUR", fatal: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := records.HiringClientRecord{Country: tt.country, Currency: tt.currency}.CheckCurrency()
			switch {
			case tt.fatal:
				assert.True(t, errors.IsFatal(err))
			case tt.warning:
				assert.True(t, errors.IsWarning(err))
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestMandatoryProvided(t *testing.T) {
	full := records.HiringClientRecord{
		Company: "Acme", FirstName: "Jane", LastName: "Roe", Email: "jane@acme.ca",
		ContactPhone: "5145551234", Street: "1 Main", City: "Montreal", State: "QC",
		Country: "CA", PostalCode: "H1H1H1",
	}
	assert.True(t, full.MandatoryProvided())

	noState := full
	noState.State = ""
	assert.False(t, noState.MandatoryProvided(), "state required in Canada")

	abroad := noState
	abroad.Country = "FR"
	assert.True(t, abroad.MandatoryProvided(), "state exempt outside Canada and the US")

	noEmail := full
	noEmail.Email = " "
	assert.False(t, noEmail.MandatoryProvided())

	assert.False(t, records.HiringClientRecord{}.MandatoryProvided())
}

func TestFlags(t *testing.T) {
	r := records.HiringClientRecord{IsTakeOver: "yes", IsAssociationFee: "1", DoNotMatch: "=TRUE", Ambiguous: "false", BaseSubscriptionFee: "803"}
	assert.True(t, r.TakeOver())
	assert.True(t, r.AssociationFee())
	assert.True(t, r.SkipMatching())
	assert.False(t, r.MarkedAmbiguous())
	fee, err := r.BaseFee()
	require.NoError(t, err)
	assert.InDelta(t, 803.0, fee, 0.001)
}

func TestParseAssessmentLevel(t *testing.T) {
	tests := map[string]int{
		"Gold": 2, "silver": 2, "Level 3": 2, "level2": 2, "3": 2, "2": 2,
		"bronze": 1, "Level1": 1, "1": 1,
		"": 0, "platinum": 0, "4": 0,
	}
	for in, want := range tests {
		assert.Equal(t, want, records.ParseAssessmentLevel(in), in)
	}
}

func TestParseExpirationDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
		warn bool
	}{
		{in: "31/12/25", want: time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), ok: true},
		{in: "1/2/2026", want: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), ok: true},
		{in: "15/03/2025", want: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), ok: true},
		{in: ""},
		{in: "2025-12-31", warn: true},
		{in: "12/31/2025", warn: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok, err := records.ParseExpirationDate(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got))
			}
			if tt.warn {
				assert.True(t, errors.IsWarning(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseAmountAndID(t *testing.T) {
	amounts := map[string]float64{"": 0, "803": 803, "1,234.50": 1234.5, "12,5": 12.5, "$ 99.99": 99.99}
	for in, want := range amounts {
		got, err := records.ParseAmount(in)
		require.NoError(t, err, in)
		assert.InDelta(t, want, got, 0.0001, in)
	}
	_, err := records.ParseAmount("n/a")
	assert.Error(t, err)

	id, err := records.ParseID(" 1234 ")
	require.NoError(t, err)
	assert.Equal(t, int64(1234), id)
	id, err = records.ParseID("1234.0")
	require.NoError(t, err)
	assert.Equal(t, int64(1234), id)
	_, err = records.ParseID("12.5")
	assert.True(t, errors.IsValidationError(err))
}
