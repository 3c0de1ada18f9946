package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/leadrank/pkg/leads"
	"github.com/jmylchreest/leadrank/pkg/schema"
)

var oldSchoolStack = "Legacy (ColdFusion, On-Premise DB)"

func testLeads() []leads.Lead {
	return []leads.Lead{
		{
			Record: schema.Record{
				CompanyName:      "OldSchool Mfg. Co.",
				ContactName:      "Ada",
				Website:          "oldschool.example",
				Industry:         "Manufacturing",
				AnnualRevenueUSD: schema.Float(5_000_000),
				YearsInBusiness:  25,
			},
			Score:     100,
			Legacy:    true,
			TechStack: &oldSchoolStack,
		},
		{
			Record: schema.Record{
				CompanyName:     "株式会社テスト",
				ContactName:     "N/A",
				Website:         "N/A",
				Industry:        "Software",
				YearsInBusiness: 3.5,
			},
			Score: 40,
		},
	}
}

func items(ls []leads.Lead) []any {
	out := make([]any, len(ls))
	for i, l := range ls {
		out[i] = l
	}
	return out
}

// --- NewWriter Factory Tests ---

func TestNewWriter(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatJSON, "*output.JSONWriter"},
		{FormatJSONL, "*output.JSONLWriter"},
		{FormatYAML, "*output.YAMLWriter"},
		{FormatCSV, "*output.CSVWriter"},
		{FormatTable, "*output.TableWriter"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			w, err := NewWriter(&bytes.Buffer{}, tt.format)
			if err != nil {
				t.Fatalf("NewWriter() error = %v", err)
			}
			if got := fmt.Sprintf("%T", w); got != tt.want {
				t.Errorf("NewWriter(%s) = %s, want %s", tt.format, got, tt.want)
			}
		})
	}
}

func TestNewWriter_UnsupportedFormat(t *testing.T) {
	_, err := NewWriter(&bytes.Buffer{}, Format("xlsx"))
	if err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Fatalf("expected unsupported format error, got %v", err)
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("TABLE"); err != nil || f != FormatTable {
		t.Errorf("ParseFormat() = %q, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

// --- JSONWriter Tests ---

func TestJSONWriter_SingleItemUnwrapped(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONWriter(buf, true, "  ")
	if err := w.Write(testLeads()[0]); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("failed to unmarshal output: %v", err)
	}
	if got["company_name"] != "OldSchool Mfg. Co." || got["ai_acquisition_score"] != float64(100) {
		t.Errorf("unexpected output: %v", got)
	}
}

func TestJSONWriter_WithArray(t *testing.T) {
	buf := &bytes.Buffer{}
	w, err := NewWriter(buf, FormatJSON, WithArray(true), WithPretty(false))
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}
	if err := w.Write(testLeads()[0]); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	var got []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("expected a JSON array, got %q: %v", buf.String(), err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 item, got %d", len(got))
	}
	if lines := strings.Split(strings.TrimSpace(buf.String()), "\n"); len(lines) != 1 {
		t.Errorf("expected compact output, got %d lines", len(lines))
	}
}

func TestJSONWriter_NullRevenue(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONWriter(buf, false, "")
	if err := w.WriteAll(items(testLeads())); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if !strings.Contains(buf.String(), `"annual_revenue_usd":null`) {
		t.Errorf("expected null revenue, got %s", buf.String())
	}
}

func TestJSONWriter_Empty(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := NewJSONWriter(buf, false, "").Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Errorf("expected empty array, got %q", got)
	}
}

// --- JSONLWriter Tests ---

func TestJSONLWriter_OneLinePerLead(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONLWriter(buf)
	if err := w.WriteAll(items(testLeads())); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	for i, line := range lines {
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Errorf("line %d is not valid JSON: %v", i, err)
		}
	}
}

// --- YAMLWriter Tests ---

func TestYAMLWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewYAMLWriter(buf)
	if err := w.WriteAll(items(testLeads())); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	var got []map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("failed to unmarshal output: %v", err)
	}
	if len(got) != 2 || got[0]["legacy_tech_flag"] != true {
		t.Errorf("unexpected output: %v", got)
	}
}

// --- CSVWriter Tests ---

func TestCSVWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewCSVWriter(buf)
	if err := w.WriteAll(items(testLeads())); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	records, err := csv.NewReader(buf).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse CSV: %v", err)
	}

	want := [][]string{
		leads.Columns(),
		{"OldSchool Mfg. Co.", "Ada", "oldschool.example", "Manufacturing", "5000000", "25", "100", "true", "Legacy (ColdFusion, On-Premise DB)"},
		{"株式会社テスト", "N/A", "N/A", "Software", "", "3.5", "40", "false", ""},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("CSV mismatch (-want +got):\n%s", diff)
	}
}

func TestCSVWriter_HeaderOnlyWhenEmpty(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := NewCSVWriter(buf).Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != strings.Join(leads.Columns(), ",") {
		t.Errorf("expected header only, got %q", got)
	}
}

func TestCSVWriter_RejectsOtherTypes(t *testing.T) {
	err := NewCSVWriter(&bytes.Buffer{}).Write(map[string]string{"a": "b"})
	if err == nil || !strings.Contains(err.Error(), "leads.Lead") {
		t.Errorf("expected unsupported item error, got %v", err)
	}
}

// --- TableWriter Tests ---

func TestTableWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewTableWriter(buf)
	for _, l := range testLeads() {
		if err := w.Write(&l); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	out := buf.String()
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header, separator and 2 rows, got %d lines:\n%s", len(lines), out)
	}
	for _, want := range []string{"$5,000,000", "N/A", "Yes", "No", "| Company"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in table:\n%s", want, out)
		}
	}

	// Wide characters must not break alignment.
	width := runewidth.StringWidth(lines[0])
	for i, line := range lines[1:] {
		if got := runewidth.StringWidth(line); got != width {
			t.Errorf("line %d width = %d, want %d", i+1, got, width)
		}
	}
}

func TestTableWriter_CloseAfterFlushDoesNotRepeat(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewTableWriter(buf)
	if err := w.Write(testLeads()[0]); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if n := strings.Count(buf.String(), "| Company"); n != 1 {
		t.Errorf("header rendered %d times", n)
	}
}

func TestFormatRevenue(t *testing.T) {
	tests := []struct {
		in   *float64
		want string
	}{
		{nil, "N/A"},
		{schema.Float(5_000_000), "$5,000,000"},
		{schema.Float(1234.5), "$1,234.5"},
		{schema.Float(0), "$0"},
	}
	for _, tt := range tests {
		if got := FormatRevenue(tt.in); got != tt.want {
			t.Errorf("FormatRevenue() = %q, want %q", got, tt.want)
		}
	}
}

// --- Buffered Writer Tests ---

func TestBufferedWriters_DocumentShape(t *testing.T) {
	tests := []struct {
		name      string
		format    Format
		array     bool
		items     int
		wantStart string
	}{
		{"json single", FormatJSON, false, 1, "{"},
		{"json single as array", FormatJSON, true, 1, "["},
		{"json many", FormatJSON, false, 2, "["},
		{"yaml single", FormatYAML, false, 1, "company_name:"},
		{"yaml single as array", FormatYAML, true, 1, "- company_name:"},
		{"yaml many", FormatYAML, false, 2, "- company_name:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			w, err := NewWriter(buf, tt.format, WithArray(tt.array))
			if err != nil {
				t.Fatalf("NewWriter() error = %v", err)
			}
			if err := w.WriteAll(items(testLeads()[:tt.items])); err != nil {
				t.Fatalf("WriteAll() error = %v", err)
			}
			// Close after Flush must not repeat the document.
			if err := w.Flush(); err != nil {
				t.Fatalf("Flush() error = %v", err)
			}
			if err := w.Close(); err != nil {
				t.Fatalf("Close() error = %v", err)
			}

			out := buf.String()
			if !strings.HasPrefix(out, tt.wantStart) {
				t.Errorf("output should start with %q:\n%s", tt.wantStart, out)
			}
			if n := strings.Count(out, "OldSchool Mfg. Co."); n != 1 {
				t.Errorf("document emitted %d times:\n%s", n, out)
			}
		})
	}
}
