// Package catalog provides the declarative pattern catalog used to classify
// table header text into semantic categories.
//
// A [Catalog] is a versioned list of [Rule] values loaded from YAML. Each
// rule names a category (temporal, entity, metric, unit), a match kind
// (exact, prefix, token, contains, regex), a list of patterns, and a weight.
// The catalog holds no matching logic; the classify package interprets it.
// Header vocabularies and locale variants (month abbreviations, fiscal
// markers, currency symbols) extend by editing data, not code.
//
// [Default] returns the embedded catalog shipped with the library. Extension
// packs load with [Load] and layer on via [Catalog.Merge]:
//
//	cat := catalog.Default()
//	extra, err := catalog.Load("catalog-fr.yaml")
//	if err == nil {
//	    cat = cat.Merge(extra)
//	}
package catalog
