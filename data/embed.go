package data

import (
	_ "embed"
)

// CatalogYAML is the static building, research and hero catalog
//
//go:embed catalog.yaml
var CatalogYAML []byte
