// Package docs embeds the API specification served at /swagger.
package docs

import (
	_ "embed"
	"encoding/json"
)

//go:embed swagger.json
var swaggerJSON []byte

// SwaggerJSON returns the raw embedded specification.
func SwaggerJSON() []byte {
	return swaggerJSON
}

// SwaggerSpec is the subset of the specification the server itself reads.
type SwaggerSpec struct {
	Paths map[string]map[string]PathInfo `json:"paths"`
}

// PathInfo describes one API endpoint.
type PathInfo struct {
	Summary     string   `json:"summary"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// GetSwaggerSpec returns the parsed specification.
func GetSwaggerSpec() (*SwaggerSpec, error) {
	var spec SwaggerSpec
	if err := json.Unmarshal(swaggerJSON, &spec); err != nil {
		return nil, err
	}
	return &spec, nil
}
