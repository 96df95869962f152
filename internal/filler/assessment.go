package filler

import (
	"context"
	"fmt"

	"github.com/geoirb/doc-templater/internal/xlsx"
)

// ProductEnvironmentAssessment fills the environment assessment sheet.
// The template carries only literal placeholders, so the blanket pass is
// the whole job.
type ProductEnvironmentAssessment struct {
	facade *xlsx.Facade
}

// Fill ...
func (s *ProductEnvironmentAssessment) Fill(ctx context.Context, templatePath string, params map[string]interface{}) ([]byte, error) {
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
