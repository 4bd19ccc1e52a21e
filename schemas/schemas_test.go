package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/witcheck/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	schemaFiles := []string{
		"violations.schema.json",
	}

	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(".", schemaFile))
			require.NoError(t, err, "should be able to read schema file")

			var schemaObj map[string]interface{}
			err = json.Unmarshal(data, &schemaObj)
			require.NoError(t, err, "schema file should be valid JSON: %s", schemaFile)

			_, hasSchema := schemaObj["$schema"]
			_, hasProps := schemaObj["properties"]
			assert.True(t, hasSchema && hasProps, "schema should declare $schema and properties")
		})
	}
}

func TestViolationsReport_EmbeddedMatchesFile(t *testing.T) {
	data, err := os.ReadFile("violations.schema.json")
	require.NoError(t, err)
	assert.Equal(t, string(data), ViolationsReport)
}

func TestViolationsReport_AcceptsValidReport(t *testing.T) {
	doc := `{
		"run_id": "550e8400-e29b-41d4-a716-446655440000",
		"root": "proposals/clocks/wit",
		"generated_at": "2026-01-02T15:04:05Z",
		"count": 1,
		"by_kind": {"interface": 1},
		"violations": [
			{
				"file": "proposals/clocks/wit/monotonic-clock.wit",
				"line": 9,
				"declaration": "interface",
				"name": "monotonic-clock",
				"message": "Missing @since annotation for interface 'monotonic-clock'"
			}
		]
	}`

	assert.NoError(t, schemas.ValidateJSONString(ViolationsReport, doc))
}

func TestViolationsReport_RejectsUnknownKind(t *testing.T) {
	doc := `{
		"run_id": "550e8400-e29b-41d4-a716-446655440000",
		"root": "wit",
		"count": 1,
		"violations": [
			{"file": "a.wit", "line": 1, "declaration": "struct", "name": "a", "message": "m"}
		]
	}`

	err := schemas.ValidateJSONString(ViolationsReport, doc)
	require.Error(t, err)
	var validationErr *schemas.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestViolationsReport_RejectsZeroLine(t *testing.T) {
	doc := `{
		"run_id": "550e8400-e29b-41d4-a716-446655440000",
		"root": "wit",
		"count": 1,
		"violations": [
			{"file": "a.wit", "line": 0, "declaration": "world", "name": "a", "message": "m"}
		]
	}`

	assert.Error(t, schemas.ValidateJSONString(ViolationsReport, doc))
}
