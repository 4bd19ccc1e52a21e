package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/witcheck/internal/schemas"
	"github.com/jonathan/witcheck/internal/types"
	schemafiles "github.com/jonathan/witcheck/schemas"
)

// Report is the machine-readable result of one validate-since run
type Report struct {
	RunID       string                        `json:"run_id"`
	Root        string                        `json:"root"`
	GeneratedAt time.Time                     `json:"generated_at"`
	Count       int                           `json:"count"`
	ByKind      map[types.DeclarationKind]int `json:"by_kind,omitempty"`
	Violations  []types.Violation             `json:"violations"`
}

// NewReport builds a report for the violations found under root.
func NewReport(root string, violations []types.Violation) *Report {
	if violations == nil {
		violations = []types.Violation{}
	}
	collection := &types.Violations{Violations: violations}
	byKind := collection.CountByKind()
	if len(byKind) == 0 {
		byKind = nil
	}
	return &Report{
		RunID:       uuid.NewString(),
		Root:        root,
		GeneratedAt: time.Now().UTC(),
		Count:       len(violations),
		ByKind:      byKind,
		Violations:  violations,
	}
}

// Marshal encodes the report as indented JSON.
func (r *Report) Marshal() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report to JSON: %w", err)
	}
	return jsonBytes, nil
}

// Validate checks the encoded report against the published violations schema.
func (r *Report) Validate() error {
	jsonBytes, err := r.Marshal()
	if err != nil {
		return err
	}
	return schemas.ValidateJSONBytes(schemafiles.ViolationsReport, jsonBytes)
}

// WriteJSON writes the report to path, creating parent directories as needed.
func (r *Report) WriteJSON(path string) error {
	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	jsonBytes, err := r.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write report to output file: %w", err)
	}
	return nil
}
