// Package dataset bundles the default insurance-company dataset.
package dataset

import (
	_ "embed"

	"socialdash/internal/engine"
)

//go:embed insurance.json
var insuranceJSON []byte

// Default decodes and validates the bundled dataset.
func Default() (*engine.Dataset, error) {
	ds, err := engine.LoadJSON(insuranceJSON)
	if err != nil {
		return nil, err
	}
	if err := engine.Validate(ds); err != nil {
		return nil, err
	}
	return ds, nil
}
