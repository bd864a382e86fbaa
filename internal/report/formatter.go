package report

import (
	"encoding/json"

	"github.com/kagisom/bankrecon/internal/domain"
)

// OutputFormatter defines the interface for formatting run results
type OutputFormatter interface {
	Format(result domain.RunResult) ([]byte, error)
	FileExtension() string
}

// JSONFormatter formats run results as JSON
type JSONFormatter struct {
	PrettyPrint bool
}

func NewJSONFormatter(prettyPrint bool) *JSONFormatter {
	return &JSONFormatter{
		PrettyPrint: prettyPrint,
	}
}

// Format implements the OutputFormatter interface for JSON
func (f *JSONFormatter) Format(result domain.RunResult) ([]byte, error) {
	if f.PrettyPrint {
		return json.MarshalIndent(result, "", "  ")
	}
	return json.Marshal(result)
}

func (f *JSONFormatter) FileExtension() string {
	return "json"
}
