package leadrank

import "github.com/jmylchreest/leadrank/pkg/schema"

// SampleTable returns a small demo dataset with non-canonical headers.
func SampleTable() schema.Table {
	return schema.Table{
		Columns: []string{"Company Name", "Contact Name", "Website", "Industry", "Annual Revenue (USD)", "Years in Business"},
		Rows: [][]string{
			{"TechCorp Inc.", "John Smith", "techcorp.com", "Software", "5000000", "8"},
			{"Legacy Manufacturing", "Mary Johnson", "legacymfg.com", "Manufacturing", "8500000", "35"},
			{"Modern Solutions", "David Lee", "modernsol.io", "Consulting", "3200000", "12"},
			{"Old School Retail", "Sarah Wilson", "oldschool.biz", "Retail", "1800000", "28"},
			{"AI Startup", "Mike Chen", "aistartup.ai", "AI/ML", "900000", "2"},
		},
	}
}
