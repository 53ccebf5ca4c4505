// Package api ships the HTTP contract of the order service.
package api

import _ "embed"

// OpenAPI is the OpenAPI 3 document served at /openapi.yaml and used to
// validate incoming requests.
//
//go:embed openapi.yaml
var OpenAPI []byte
