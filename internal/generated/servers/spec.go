package servers

import (
	_ "embed"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var specYAML []byte

// GetSwagger parses the embedded OpenAPI document. Callers validate it.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	return loader.LoadFromData(specYAML)
}

// RawSpec returns the embedded document as written.
func RawSpec() []byte {
	return specYAML
}
