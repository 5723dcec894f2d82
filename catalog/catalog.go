package catalog

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/factura/model"
)

// Match kinds, in decreasing order of specificity. The header classifier
// scales rule weights by specificity, so an exact keyword beats a substring
// hit of the same weight.
const (
	MatchExact    = "exact"    // whole normalized text equals the pattern
	MatchPrefix   = "prefix"   // normalized text starts with the pattern
	MatchToken    = "token"    // pattern appears as a whole token
	MatchContains = "contains" // pattern appears as a substring
	MatchRegex    = "regex"    // pattern is a regular expression
)

// Rule categories. These map onto model.HeaderClass; the catalog keeps them
// as strings so rule files stay readable.
const (
	CategoryTemporal = "temporal"
	CategoryEntity   = "entity"
	CategoryMetric   = "metric"
	CategoryUnit     = "unit"
)

// Rule is one declarative classification rule: if any of Patterns matches a
// header's text under the Match kind, the rule votes for Category with the
// given Weight.
type Rule struct {
	Category string   `yaml:"category"`
	Match    string   `yaml:"match"`
	Patterns []string `yaml:"patterns"`
	Weight   float64  `yaml:"weight"`
	Locale   string   `yaml:"locale,omitempty"`
}

// Catalog is a versioned set of classification rules. It is pure data: all
// matching logic lives in the classify package, so vocabularies and locales
// extend without code changes.
type Catalog struct {
	Version string `yaml:"version"`
	Rules   []Rule `yaml:"rules"`
}

// Load reads and validates a catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadBytes(data)
}

// LoadBytes parses and validates a catalog from YAML bytes.
func LoadBytes(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks every rule for a known category and match kind, a weight
// in [0,1], and compilable regex patterns.
func (c *Catalog) Validate() error {
	for i, r := range c.Rules {
		if _, ok := CategoryClass(r.Category); !ok {
			return fmt.Errorf("rule %d: unknown category %q", i, r.Category)
		}
		switch r.Match {
		case MatchExact, MatchPrefix, MatchToken, MatchContains, MatchRegex:
		default:
			return fmt.Errorf("rule %d: unknown match kind %q", i, r.Match)
		}
		if r.Weight < 0 || r.Weight > 1 {
			return fmt.Errorf("rule %d: weight %f outside [0,1]", i, r.Weight)
		}
		if len(r.Patterns) == 0 {
			return fmt.Errorf("rule %d: no patterns", i)
		}
		if r.Match == MatchRegex {
			for _, p := range r.Patterns {
				if _, err := regexp.Compile(p); err != nil {
					return fmt.Errorf("rule %d: bad pattern %q: %w", i, p, err)
				}
			}
		}
	}
	return nil
}

// RulesFor returns the rules voting for the given category, in file order.
func (c *Catalog) RulesFor(category string) []Rule {
	var out []Rule
	for _, r := range c.Rules {
		if r.Category == category {
			out = append(out, r)
		}
	}
	return out
}

// Merge returns a new catalog with the receiver's rules followed by other's.
// Used for locale or vocabulary extension packs layered on the default
// catalog.
func (c *Catalog) Merge(other *Catalog) *Catalog {
	merged := &Catalog{Version: c.Version}
	if other.Version != "" {
		merged.Version = c.Version + "+" + other.Version
	}
	merged.Rules = append(merged.Rules, c.Rules...)
	merged.Rules = append(merged.Rules, other.Rules...)
	return merged
}

// CategoryClass maps a catalog category string to its model.HeaderClass.
func CategoryClass(category string) (model.HeaderClass, bool) {
	switch category {
	case CategoryTemporal:
		return model.HeaderTemporal, true
	case CategoryEntity:
		return model.HeaderEntity, true
	case CategoryMetric:
		return model.HeaderMetric, true
	case CategoryUnit:
		return model.HeaderUnit, true
	default:
		return model.HeaderUnknown, false
	}
}
