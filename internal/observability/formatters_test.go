package observability

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/jonathan/witcheck/internal/proposals"
	"github.com/jonathan/witcheck/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintViolations_None(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintViolations(nil)
	assert.Contains(t, buf.String(), "ALL DECLARATIONS ANNOTATED")

	buf.Reset()
	NewPrinter(&buf).PrintViolations(&types.Violations{})
	assert.Contains(t, buf.String(), "ALL DECLARATIONS ANNOTATED")
}

func TestPrintViolations(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintViolations(&types.Violations{Violations: []types.Violation{
		types.NewViolation("wit/streams.wit", 10, types.KindResource, "input-stream"),
		types.NewViolation("wit/streams.wit", 40, types.KindResource, "output-stream"),
		types.NewViolation("wit/error.wit", 3, types.KindInterface, "error"),
	}})
	output := buf.String()

	assert.Contains(t, output, "MISSING VERSION ANNOTATIONS")
	assert.Contains(t, output, "Found 3 missing annotation(s)")
	assert.Contains(t, output, "resource   2")
	assert.Contains(t, output, "interface  1")
	assert.Contains(t, output, "wit/streams.wit:40")
	assert.Contains(t, output, "'input-stream'")
}

func TestPrintViolations_Truncated(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	var list []types.Violation
	for i := 1; i <= 8; i++ {
		list = append(list, types.NewViolation("a.wit", i, types.KindEnum, fmt.Sprintf("e%d", i)))
	}
	p.PrintViolations(&types.Violations{Violations: list})

	output := buf.String()
	assert.Contains(t, output, "... and 3 more")
	assert.NotContains(t, output, "'e6'")
}

func TestPrintProposalResults(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintProposalResults([]proposals.Result{
		{Target: proposals.Target{Proposal: "io", Version: proposals.Version02}},
		{
			Target:      proposals.Target{Proposal: "clocks", Version: proposals.Version03},
			FailedSteps: []string{proposals.StepWasmEncoding, proposals.StepSince},
		},
	})
	output := buf.String()

	assert.Contains(t, output, "PROPOSAL VALIDATION")
	assert.Contains(t, output, "✓ io v0.2")
	assert.Contains(t, output, "✗ clocks v0.3")
	assert.Contains(t, output, "[@since validation, wasm encoding]")
	assert.Contains(t, output, "1 of 2 proposal(s) passed")
}

func TestPrintProposalResults_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintProposalResults(nil)
	assert.Empty(t, buf.String())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	long := strings.Repeat("x", 20)
	assert.Equal(t, "xxxxxxx...", truncate(long, 10))
}
