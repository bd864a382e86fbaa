package report

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kagisom/bankrecon/pkg/fileutil"
)

// Writer renders batch reports and raw transaction exports into an output
// directory.
type Writer struct {
	OutputDir string
}

// NewWriter creates a Writer, making sure the output directory exists.
func NewWriter(outputDir string) (*Writer, error) {
	if outputDir == "" {
		outputDir = "."
	}
	if err := fileutil.EnsureDir(outputDir); err != nil {
		return nil, err
	}

	return &Writer{OutputDir: outputDir}, nil
}

// formatRand renders an amount as "R1 234.56": rand symbol, two decimals,
// space as thousands separator.
func formatRand(d decimal.Decimal) string {
	s := d.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, fracPart, _ := strings.Cut(s, ".")
	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	out := "R" + strings.Join(groups, " ") + "." + fracPart
	if neg {
		out = "R-" + strings.TrimPrefix(out, "R")
	}
	return out
}
