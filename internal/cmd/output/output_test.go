package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/cbxmatch"
	"github.com/agentstation/cbxmatch/pkg/action"
	"github.com/agentstation/cbxmatch/pkg/errors"
)

func testResult() *cbxmatch.Result {
	r := cbxmatch.NewResult("run-1")
	r.Stats.Records = 3
	r.Stats.Matched = 2
	r.Stats.NoMatch = 1
	r.Stats.Created = 1
	r.Stats.Actions[action.Onboarding] = 1
	r.Stats.Actions[action.AlreadyQualified] = 2
	r.Warnings.Add(errors.NewDataWarning(4, "contact_currency", "USD", "currency and country mismatch"))
	r.Metadata.Duration = 1500 * time.Millisecond
	return r
}

func TestNewSummary(t *testing.T) {
	s := NewSummary(testResult(), "out.xlsx")

	assert.Equal(t, "run-1", s.RunID)
	assert.Equal(t, "1.5s", s.Duration)
	require.Len(t, s.Actions, len(action.All()))
	assert.Equal(t, ActionCount{Action: "onboarding", Count: 1}, s.Actions[0])
	assert.Len(t, s.Warnings, 1)
}

func TestWriteSummary(t *testing.T) {
	s := NewSummary(testResult(), "out.xlsx")

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteSummary(&buf, FormatJSON, s))
		var decoded map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "run-1", decoded["run_id"])
		assert.Equal(t, "out.xlsx", decoded["output"])
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteSummary(&buf, FormatYAML, s))
		var decoded map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "run-1", decoded["run_id"])
		assert.Contains(t, decoded, "actions")
	})

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteSummary(&buf, FormatTable, s))
		out := buf.String()
		assert.Contains(t, out, "Run run-1 completed in 1.5s")
		assert.Contains(t, out, "already_qualified")
		assert.Contains(t, out, "1 warnings were ignored")
		assert.Contains(t, out, "currency and country mismatch")
	})
}

func TestReport(t *testing.T) {
	var r Report
	r.Entities, r.Contractors = 10, 4
	r.Add("registry", errors.NewDataWarning(-1, "columns", "27", "got 27 columns when expecting 28"))
	assert.False(t, r.Fatal())
	r.AddFatal("hiring clients", errors.NewDataError(2, "contact_currency", "EUR", "invalid currency"))
	assert.True(t, r.Fatal())

	data := r.Table()
	require.Len(t, data.Rows, 2)
	assert.Equal(t, []string{"registry", "-", "warning", "columns", "27", "got 27 columns when expecting 28"}, data.Rows[0])
	assert.Equal(t, "3", data.Rows[1][1])
	assert.Equal(t, "error", data.Rows[1][2])

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, FormatTable, r))
	assert.True(t, strings.HasPrefix(buf.String(), "10 registry entities, 4 contractors"))

	buf.Reset()
	require.NoError(t, WriteReport(&buf, FormatTable, Report{}))
	assert.Contains(t, buf.String(), "No data issues found")
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"", "", false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTableFormatterFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&TableFormatter{}).Format(&buf, map[string]int{"a": 1}))
	assert.JSONEq(t, `{"a":1}`, buf.String())
}
