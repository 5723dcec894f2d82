package catalog

import (
	_ "embed"
	"fmt"
)

//go:embed default.yaml
var defaultYAML []byte

// Default returns the embedded default catalog. The embedded file is
// validated by tests, so a parse failure here indicates a broken build.
func Default() *Catalog {
	c, err := LoadBytes(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog invalid: %v", err))
	}
	return c
}
