// Package schemas holds the JSON Schemas for witcheck's machine-readable output.
package schemas

import _ "embed"

// ViolationsReport is the schema for the JSON report written by validate-since --json.
//
//go:embed violations.schema.json
var ViolationsReport string
