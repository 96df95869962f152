package filler

import (
	"context"
	"fmt"
	"strings"

	"github.com/geoirb/doc-templater/internal/xlsx"
)

// Row per referenced document kind in the user manual sheet.
var manualFileTypeRows = map[string]int{
	"product_requirement":          25,
	"requirement_specification":    26,
	"product_design_specification": 27,
}

// UserManualSpecification fills the user manual sheet: scalar fields at
// fixed coordinates plus the referenced document name and version in the
// row owned by its file type.
type UserManualSpecification struct {
	facade *xlsx.Facade
}

// Fill ...
func (s *UserManualSpecification) Fill(ctx context.Context, templatePath string, params map[string]interface{}) ([]byte, error) {
	f, err := xlsx.Open(templatePath)
	if err != nil {
		return nil, fmt.Errorf("open template: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)

	setCell(f, sheet, "B19", paramString(params, "theme_no"))
	setCell(f, sheet, "D19", paramString(params, "theme_name"))
	setCell(f, sheet, "J19", paramString(params, "product_model_name"))
	setCell(f, sheet, "B21", paramString(params, "sales_name"))

	if row, ok := manualFileTypeRows[strings.TrimSpace(paramString(params, "file_type"))]; ok {
		setCell(f, sheet, fmt.Sprintf("D%d", row), paramString(params, "name"))
		setCell(f, sheet, fmt.Sprintf("G%d", row), paramString(params, "version"))
	}

	if err = s.facade.Substitute(ctx, f, params, nil); err != nil {
		return nil, fmt.Errorf("substitute: %w", err)
	}
	return xlsx.Bytes(f)
}
