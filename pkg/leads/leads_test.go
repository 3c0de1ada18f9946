package leads

import (
	"encoding/json"
	"maps"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/leadrank/pkg/classifier"
	"github.com/jmylchreest/leadrank/pkg/schema"
	"github.com/jmylchreest/leadrank/pkg/scoring"
)

func lead(index int, name string, score int, legacy bool, industry string, revenue *float64) Lead {
	return Lead{
		Record: schema.Record{
			CompanyName:      name,
			Industry:         industry,
			AnnualRevenueUSD: revenue,
		},
		Score:  score,
		Legacy: legacy,
		Index:  index,
	}
}

func sample() []Lead {
	return []Lead{
		lead(0, "Delta", 75, false, "Software", schema.Float(2e6)),
		lead(1, "Alpha", 100, true, "Manufacturing", schema.Float(5e6)),
		lead(2, "Charlie", 75, true, "Retail", nil),
		lead(3, "Bravo", 35, false, "Software", schema.Float(500_000)),
		lead(4, "Echo", 90, false, "Insurance", schema.Float(9e6)),
	}
}

func names(leads []Lead) []string {
	out := make([]string, len(leads))
	for i, l := range leads {
		out[i] = l.CompanyName
	}
	return out
}

func scores(leads []Lead) []int {
	out := make([]int, len(leads))
	for i, l := range leads {
		out[i] = l.Score
	}
	return out
}

// --- Sort Tests ---

func TestSort(t *testing.T) {
	tests := []struct {
		by   SortKey
		want []string
	}{
		{SortScoreDesc, []string{"Alpha", "Echo", "Delta", "Charlie", "Bravo"}},
		{SortScoreAsc, []string{"Bravo", "Delta", "Charlie", "Echo", "Alpha"}},
		{SortCompanyName, []string{"Alpha", "Bravo", "Charlie", "Delta", "Echo"}},
		{SortRevenueDesc, []string{"Echo", "Alpha", "Delta", "Bravo", "Charlie"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.by), func(t *testing.T) {
			got := names(Sort(sample(), tt.by))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Sort(%s) mismatch (-want +got):\n%s", tt.by, diff)
			}
		})
	}
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	in := sample()
	before := names(in)
	_ = Sort(in, SortScoreDesc)
	if diff := cmp.Diff(before, names(in)); diff != "" {
		t.Errorf("Sort() mutated input (-before +after):\n%s", diff)
	}
}

func TestSort_TiesFollowInputIndex(t *testing.T) {
	// Indexes out of slice order, as produced by a parallel run.
	in := []Lead{
		lead(2, "C", 80, false, "", nil),
		lead(0, "A", 80, false, "", nil),
		lead(1, "B", 80, false, "", nil),
	}
	for _, by := range []SortKey{SortScoreDesc, SortScoreAsc, SortRevenueDesc} {
		if got := names(Sort(in, by)); !slices.Equal(got, []string{"A", "B", "C"}) {
			t.Errorf("Sort(%s) = %v, want input order", by, got)
		}
	}
}

func TestSort_DescEqualsReversedAsc(t *testing.T) {
	desc := scores(Sort(sample(), SortScoreDesc))
	asc := scores(Sort(sample(), SortScoreAsc))
	slices.Reverse(asc)
	if diff := cmp.Diff(desc, asc); diff != "" {
		t.Errorf("score sequences differ (-desc +reversed asc):\n%s", diff)
	}
}

func TestParseSortKey(t *testing.T) {
	if k, err := ParseSortKey(""); err != nil || k != SortScoreDesc {
		t.Errorf("ParseSortKey(\"\") = %q, %v", k, err)
	}
	if k, err := ParseSortKey("Company_Name"); err != nil || k != SortCompanyName {
		t.Errorf("ParseSortKey() = %q, %v", k, err)
	}
	if _, err := ParseSortKey("random"); err == nil {
		t.Error("expected error for unknown sort key")
	}
}

func TestTop(t *testing.T) {
	if got := names(Top(sample(), 2)); !slices.Equal(got, []string{"Alpha", "Echo"}) {
		t.Errorf("Top(2) = %v", got)
	}
	if got := Top(sample(), 0); len(got) != 5 {
		t.Errorf("Top(0) returned %d leads, want all", len(got))
	}
	if got := Top(sample(), 50); len(got) != 5 {
		t.Errorf("Top(50) returned %d leads", len(got))
	}
}

// --- Filter Tests ---

func TestFilter(t *testing.T) {
	tests := []struct {
		name  string
		preds []Predicate
		want  []string
	}{
		{"none", nil, []string{"Delta", "Alpha", "Charlie", "Bravo", "Echo"}},
		{"legacy", []Predicate{Legacy(true)}, []string{"Alpha", "Charlie"}},
		{"modern", []Predicate{Legacy(false)}, []string{"Delta", "Bravo", "Echo"}},
		{"score_range", []Predicate{ScoreRange(75, 90)}, []string{"Delta", "Charlie", "Echo"}},
		{"industry", []Predicate{Industry("Software", "Retail")}, []string{"Delta", "Charlie", "Bravo"}},
		{"combined", []Predicate{ScoreRange(70, 100), Industry("Software")}, []string{"Delta"}},
		{"or", []Predicate{Or(Legacy(true), Industry("Insurance"))}, []string{"Alpha", "Charlie", "Echo"}},
		{"not", []Predicate{Not(Industry("Software"))}, []string{"Alpha", "Charlie", "Echo"}},
		{"high_tier", []Predicate{TierHigh.Predicate()}, []string{"Alpha", "Echo"}},
		{"medium_tier", []Predicate{TierMedium.Predicate()}, []string{"Delta", "Charlie"}},
		{"industry_exact", []Predicate{Industry("software")}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(Filter(sample(), tt.preds...))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Filter() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilter_LegacyMatchesClassifier(t *testing.T) {
	c := classifier.NewLookup(nil, nil)
	e, err := scoring.NewEngine(nil)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	var all []Lead
	want := map[string]bool{}
	for i, name := range slices.Sorted(maps.Keys(classifier.DefaultTable())) {
		rec := schema.Record{CompanyName: name, Industry: "General", YearsInBusiness: 10}
		cls := c.Classify(rec)
		all = append(all, Assemble(i, rec, cls, e.Score(rec, cls.Legacy)))
		if cls.Legacy {
			want[name] = true
		}
	}

	got := Filter(all, Legacy(true))
	if len(got) != len(want) {
		t.Fatalf("Filter(Legacy) returned %d leads, classifier flagged %d", len(got), len(want))
	}
	for _, l := range got {
		if !want[l.CompanyName] {
			t.Errorf("%s returned by filter but not flagged by classifier", l.CompanyName)
		}
	}
}

func TestParseTier(t *testing.T) {
	tests := []struct {
		in      string
		want    Tier
		lo, hi  int
		wantErr bool
	}{
		{"", TierAll, 0, 100, false},
		{"all", TierAll, 0, 100, false},
		{"HIGH", TierHigh, 90, 100, false},
		{"medium", TierMedium, 75, 89, false},
		{"urgent", "", 0, 0, true},
	}

	for _, tt := range tests {
		got, err := ParseTier(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseTier(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if tt.wantErr {
			continue
		}
		lo, hi := got.Range()
		if got != tt.want || lo != tt.lo || hi != tt.hi {
			t.Errorf("ParseTier(%q) = %s [%d,%d]", tt.in, got, lo, hi)
		}
	}
}

// --- Summary Tests ---

func TestSummarize(t *testing.T) {
	s := Summarize(sample())

	if s.Total != 5 || s.Legacy != 2 || s.HighPriority != 2 {
		t.Errorf("Summarize() = %+v", s)
	}
	if s.AverageScore != 75 {
		t.Errorf("AverageScore = %v, want 75", s.AverageScore)
	}
	if diff := cmp.Diff([]string{"Insurance", "Manufacturing", "Retail", "Software"}, s.Industries); diff != "" {
		t.Errorf("Industries mismatch (-want +got):\n%s", diff)
	}
	if s.TotalRevenue != 16.5e6 {
		t.Errorf("TotalRevenue = %v", s.TotalRevenue)
	}
	if !strings.Contains(s.String(), "Total revenue: $16,500,000") {
		t.Errorf("String() = %q", s.String())
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if s.Total != 0 || s.AverageScore != 0 || len(s.Industries) != 0 {
		t.Errorf("Summarize(nil) = %+v", s)
	}
}

func TestSummarizeWith_Threshold(t *testing.T) {
	if got := SummarizeWith(sample(), 75).HighPriority; got != 4 {
		t.Errorf("HighPriority = %d, want 4", got)
	}
}

// --- Serialization Tests ---

func TestLead_FieldNames(t *testing.T) {
	l := Assemble(0, schema.Record{CompanyName: "Acme", YearsInBusiness: 12},
		classifier.Classification{Legacy: true, TechStack: "Legacy (Cobol)"},
		scoring.Breakdown{Score: 80})

	data, err := json.Marshal(l)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	for _, col := range Columns() {
		if _, ok := m[col]; !ok {
			t.Errorf("JSON missing %q: %s", col, data)
		}
	}
	if m["annual_revenue_usd"] != nil {
		t.Errorf("null revenue should serialize as null, got %v", m["annual_revenue_usd"])
	}

	y, err := yaml.Marshal(l)
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}
	if !strings.Contains(string(y), "company_name: Acme") || !strings.Contains(string(y), "ai_acquisition_score: 80") {
		t.Errorf("unexpected YAML:\n%s", y)
	}
}

func TestLead_MissingTechStackIsNull(t *testing.T) {
	l := Assemble(0, schema.Record{CompanyName: "Unlisted Ltd"},
		classifier.Classification{Known: false},
		scoring.Breakdown{Score: 50})

	if l.TechStack != nil || l.Stack() != "" {
		t.Fatalf("TechStack = %v, want nil", l.TechStack)
	}

	data, err := json.Marshal(l)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), `"simulated_tech_stack":null`) {
		t.Errorf("JSON should carry a null tech stack: %s", data)
	}

	y, err := yaml.Marshal(l)
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}
	if !strings.Contains(string(y), "simulated_tech_stack: null") {
		t.Errorf("YAML should carry a null tech stack:\n%s", y)
	}

	listed := Assemble(0, schema.Record{}, classifier.Classification{TechStack: "Modern"}, scoring.Breakdown{})
	if listed.Stack() != "Modern" {
		t.Errorf("Stack() = %q, want Modern", listed.Stack())
	}
}
