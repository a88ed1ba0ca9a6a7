// Package docs embeds the OpenAPI description of the HTTP API.
package docs

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var raw []byte

var (
	once   sync.Once
	parsed map[string]interface{}
	errDoc error
)

// Raw returns the YAML document.
func Raw() []byte {
	return raw
}

// Spec returns the document decoded for JSON encoding.
func Spec() (map[string]interface{}, error) {
	once.Do(func() {
		if err := yaml.Unmarshal(raw, &parsed); err != nil {
			errDoc = fmt.Errorf("failed to parse openapi.yaml: %w", err)
		}
	})
	return parsed, errDoc
}
