package classifier

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/leadrank/pkg/schema"
)

// DefaultKeywords mark a tech-stack description as legacy. Matching is a
// case-sensitive substring test.
var DefaultKeywords = []string{"Legacy", "Old", "Cobol", "AS400", "DOS", "FoxPro", "Access DB"}

var defaultTable = map[string]string{
	"OldSchool Mfg. Co.":       "Legacy (ColdFusion, On-Premise DB)",
	"Coastal Retail Group":     "Legacy (Old E-Comm Platform)",
	"Central Distribution LLC": "Legacy (AS400 ERP, Desktop App)",
	"Harbor Consulting Inc.":   "Legacy (SharePoint 2010, Local Servers)",
	"Midwest Machining Corp":   "Legacy (Proprietary CAD/CAM, Old OS)",
	"Alpha Digital Inc.":       "Modern (React, Python)",
	"Prime HR Solutions":       "Modern (Cloud-native SaaS)",
	"Secure Vault Storage":     "Hybrid (Custom PHP, Modern DB)",
	"Global Transport Co.":     "Legacy (Custom Cobol Backend)",
	"Elite Finance Group":      "Modern (AWS Serverless)",
	"TechForward Corp":         "Modern (Next.js, Go)",
	"Beta Solutions LLC":       "Modern (PHP, Cloud)",
	"Apex AI Systems":          "Modern (Python, TensorFlow)",
	"Future Health SaaS":       "Modern (Azure, Microservices)",
	"Green Energy Installers":  "Hybrid (Off-the-shelf CRM)",
	"Regional Accounting PLC":  "Legacy (Quickbooks Desktop, Windows Server)",
	"Metro Web Design":         "Modern (WordPress, Cloudflare)",
	"North Star Logistics":     "Legacy (Custom FoxPro System)",
	"South Side Retailer":      "Legacy (Magento 1.x)",
	"Data Analytics Hub":       "Modern (Python, Tableau)",
	"Zenith Labs Corp":         "Modern (R Studio, Jupyter)",
	"Coastline Agencies":       "Legacy (Access DB, Custom Forms)",
	"Pioneer Tools Ltd":        "Legacy (DOS-based Inventory)",
	"River Valley Services":    "Hybrid (Salesforce, Custom Legacy Billing)",
	"Blue Sky Software":        "Modern (Ruby on Rails)",
}

// DefaultTable returns a copy of the built-in company -> tech stack table.
func DefaultTable() map[string]string {
	return maps.Clone(defaultTable)
}

// LookupClassifier flags companies by their entry in a static table.
type LookupClassifier struct {
	table    map[string]string
	keywords []string
}

// NewLookup creates a lookup classifier. Nil arguments use the defaults.
func NewLookup(table map[string]string, keywords []string) *LookupClassifier {
	if table == nil {
		table = defaultTable
	}
	if keywords == nil {
		keywords = DefaultKeywords
	}
	return &LookupClassifier{
		table:    maps.Clone(table),
		keywords: slices.Clone(keywords),
	}
}

// Classify looks the company name up exactly. Unknown companies get no
// description and are not flagged.
func (c *LookupClassifier) Classify(rec schema.Record) Classification {
	stack, ok := c.table[rec.CompanyName]
	if !ok {
		return Classification{Strategy: c.Name()}
	}
	return Classification{
		Legacy:    IsLegacyStack(stack, c.keywords),
		TechStack: stack,
		Known:     true,
		Strategy:  c.Name(),
	}
}

// Name returns the strategy name.
func (c *LookupClassifier) Name() string {
	return StrategyLookup
}

// IsLegacyStack reports whether stack contains any of keywords.
func IsLegacyStack(stack string, keywords []string) bool {
	for _, k := range keywords {
		if k != "" && strings.Contains(stack, k) {
			return true
		}
	}
	return false
}

// LoadTable reads a company -> tech stack table from a JSON or YAML file.
func LoadTable(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tech table: %w", err)
	}

	table := make(map[string]string)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("failed to parse JSON tech table: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("failed to parse YAML tech table: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported tech table format: %s", ext)
	}
	return table, nil
}
