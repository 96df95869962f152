package filler

import (
	"github.com/xuri/excelize/v2"
)

// setCell writes a scalar field to a fixed coordinate, leaving the
// template's own cell content alone when the parameter is absent or empty.
func setCell(f *excelize.File, sheet, cell, value string) {
	if value == "" {
		return
	}
	f.SetCellValue(sheet, cell, value)
}
