package classify

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/factura/catalog"
	"github.com/tsawler/factura/model"
)

// categoryOrder is the fixed priority in which categories are evaluated.
// The first category whose rules score above the minimum weight wins, so a
// header like "2024" resolves as temporal even though a metric rule might
// also brush it.
var categoryOrder = []string{
	catalog.CategoryTemporal,
	catalog.CategoryEntity,
	catalog.CategoryMetric,
	catalog.CategoryUnit,
}

// Specificity multipliers per match kind. Exact keyword hits produce higher
// confidence than partial matches of the same rule weight.
var specificity = map[string]float64{
	catalog.MatchExact:    1.0,
	catalog.MatchRegex:    0.9,
	catalog.MatchPrefix:   0.9,
	catalog.MatchToken:    0.85,
	catalog.MatchContains: 0.7,
}

// Classifier applies a pattern catalog to header text. It is side-effect
// free and safe for concurrent use once constructed.
type Classifier struct {
	// MinWeight is the minimum scaled score for a category to win. Below
	// it the header stays Unknown with confidence 0.
	MinWeight float64

	rules map[string][]compiledRule
}

type compiledRule struct {
	match    string
	patterns []string
	regexes  []*regexp.Regexp
	weight   float64
}

// NewClassifier compiles the catalog's rules. Regex rules that fail to
// compile are reported as an error (Catalog.Validate catches them earlier
// for file-loaded catalogs).
func NewClassifier(cat *catalog.Catalog) (*Classifier, error) {
	c := &Classifier{
		MinWeight: 0.5,
		rules:     make(map[string][]compiledRule),
	}
	for i, r := range cat.Rules {
		cr := compiledRule{match: r.Match, weight: r.Weight}
		if r.Match == catalog.MatchRegex {
			for _, p := range r.Patterns {
				re, err := regexp.Compile(p)
				if err != nil {
					return nil, fmt.Errorf("rule %d: compile %q: %w", i, p, err)
				}
				cr.regexes = append(cr.regexes, re)
			}
		} else {
			for _, p := range r.Patterns {
				cr.patterns = append(cr.patterns, Normalize(p))
			}
		}
		c.rules[r.Category] = append(c.rules[r.Category], cr)
	}
	return c, nil
}

// Classify assigns a semantic category and a confidence in [0,1] to header
// text. Categories are tried in fixed priority order (temporal, entity,
// metric, unit); no match above MinWeight yields Unknown with confidence 0.
func (c *Classifier) Classify(text string) (model.HeaderClass, float64) {
	normalized := Normalize(text)
	if normalized == "" || IsPlaceholder(normalized) {
		return model.HeaderUnknown, 0
	}

	for _, category := range categoryOrder {
		score := c.categoryScore(category, normalized)
		if score >= c.MinWeight {
			class, _ := catalog.CategoryClass(category)
			if score > 1 {
				score = 1
			}
			return class, score
		}
	}
	return model.HeaderUnknown, 0
}

// categoryScore returns the best scaled score any rule of the category
// achieves against the normalized text.
func (c *Classifier) categoryScore(category, normalized string) float64 {
	best := 0.0
	for _, r := range c.rules[category] {
		if !r.matches(normalized) {
			continue
		}
		score := r.weight * specificity[r.match]
		if score > best {
			best = score
		}
	}
	return best
}

func (r compiledRule) matches(text string) bool {
	switch r.match {
	case catalog.MatchExact:
		for _, p := range r.patterns {
			if text == p {
				return true
			}
		}
	case catalog.MatchPrefix:
		for _, p := range r.patterns {
			if strings.HasPrefix(text, p) {
				return true
			}
		}
	case catalog.MatchToken:
		tokens := strings.FieldsFunc(text, func(r rune) bool {
			return r == ' ' || r == ',' || r == ';' || r == '(' || r == ')' || r == ':'
		})
		for _, p := range r.patterns {
			for _, tok := range tokens {
				if tok == p {
					return true
				}
			}
		}
	case catalog.MatchContains:
		for _, p := range r.patterns {
			if strings.Contains(text, p) {
				return true
			}
		}
	case catalog.MatchRegex:
		for _, re := range r.regexes {
			if re.MatchString(text) {
				return true
			}
		}
	}
	return false
}

// Normalize prepares header text for matching: NFKC normalization (folds
// non-breaking spaces and full-width digits common in financial PDFs),
// lower-casing, and whitespace collapsing.
func Normalize(text string) string {
	text = norm.NFKC.String(text)
	text = strings.ToLower(strings.TrimSpace(text))
	return strings.Join(strings.Fields(text), " ")
}
