package filler

import (
	"context"
	"fmt"
	"strings"

	"github.com/geoirb/doc-templater/internal/docx"
	"github.com/geoirb/doc-templater/internal/placeholder"
	"github.com/geoirb/doc-templater/internal/xlsx"
)

// Default handles template families without dedicated layout knowledge:
// blanket text substitution over whichever document format the resolved
// template file carries.
type Default struct {
	facade  *xlsx.Facade
	scanner *placeholder.Scanner
}

// Fill ...
func (s *Default) Fill(ctx context.Context, templatePath string, params map[string]interface{}) ([]byte, error) {
	if strings.HasSuffix(strings.ToLower(templatePath), ".docx") {
		d, err := docx.Open(templatePath)
		if err != nil {
			return nil, fmt.Errorf("open template: %w", err)
		}
		d.SubstituteAll(s.scanner, params, nil)
		return d.Bytes()
	}

	f, err := xlsx.Open(templatePath)
	if err != nil {
		return nil, fmt.Errorf("open template: %w", err)
	}
	defer f.Close()

	if err = s.facade.Substitute(ctx, f, params, nil); err != nil {
		return nil, fmt.Errorf("substitute: %w", err)
	}
	return xlsx.Bytes(f)
}
