package filler

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/geoirb/doc-templater/internal/path"
	"github.com/geoirb/doc-templater/internal/xlsx"
)

var packagingChecklist = map[string][]string{
	"ja": {
		"製品要件書",
		"要求仕様書",
		"製品設計仕様書",
		"リスクコントロール仕様書",
		"ユーザビリティ仕様書",
		"課題分析·対策書",
		"製品アセスメント要項書",
	},
	"zh": {
		"产品要件书",
		"要求仕样书",
		"产品设计仕样书",
		"风险控制仕样书",
		"可用性仕样书",
		"课题分析/对策结果书",
		"产品环境评估要项书",
	},
}

const packagingChecklistStartRow = 27

// PackagingDesignSpecification fills the packaging design sheet: scalar
// fields at fixed coordinates plus the per-language reference document
// checklist.
type PackagingDesignSpecification struct {
	facade *xlsx.Facade
}

// Fill ...
func (s *PackagingDesignSpecification) Fill(ctx context.Context, templatePath string, params map[string]interface{}) ([]byte, error) {
	f, err := xlsx.Open(templatePath)
	if err != nil {
		return nil, fmt.Errorf("open template: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)

	setCell(f, sheet, "C21", paramString(params, "theme_no"))
	setCell(f, sheet, "E21", paramString(params, "theme_name"))
	setCell(f, sheet, "L21", paramString(params, "product_model_name"))
	setCell(f, sheet, "C23", paramString(params, "sales_name"))

	for idx, item := range packagingChecklist[path.Language(templatePath)] {
		cell, err := excelize.JoinCellName("B", packagingChecklistStartRow+idx)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, item)
	}

	if err = s.facade.Substitute(ctx, f, params, nil); err != nil {
		return nil, fmt.Errorf("substitute: %w", err)
	}
	return xlsx.Bytes(f)
}
