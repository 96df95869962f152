package filler

import (
	"context"
	"fmt"

	"github.com/geoirb/doc-templater/internal/placeholder"
	"github.com/geoirb/doc-templater/internal/xlsx"
)

var dhfProjectInfoCells = map[string]string{
	"A1": "project_name",
	"A2": "version",
	"A3": "date",
	"A4": "author",
	"A5": "department",
	"A6": "document_type",
	"A7": "reviewer",
	"A8": "approval_date",
}

// DHFIndex fills the document and drawing index: the project info block
// plus the repeating document list, which grows against a fixed row
// threshold rather than a footer marker. Older grids of this family
// reserve the rows below the list outright.
type DHFIndex struct {
	facade   *xlsx.Facade
	expander *xlsx.Expander
}

// Fill ...
func (s *DHFIndex) Fill(ctx context.Context, templatePath string, params map[string]interface{}) ([]byte, error) {
	f, err := xlsx.Open(templatePath)
	if err != nil {
		return nil, fmt.Errorf("open template: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)

	for cell, key := range dhfProjectInfoCells {
		setCell(f, sheet, cell, paramString(params, key))
	}

	if records := documentRecords(params); len(records) > 0 {
		cfg := xlsx.ExpandConfig{
			Sheet:        sheet,
			Policy:       xlsx.AnchorFixed,
			AnchorRow:    30,
			StartRow:     12,
			Preallocated: 18,
			ReferenceRow: 12,
			Groups: []xlsx.ColumnGroup{
				{From: "A", To: "B", Field: "document_no"},
				{From: "C", To: "F", Field: "document_name"},
				{From: "G", To: "H", Field: "document_version"},
			},
		}
		if _, err = s.expander.ExpandAndFill(f, cfg, records); err != nil {
			return nil, fmt.Errorf("expand document list: %w", err)
		}
	}

	if err = s.facade.Substitute(ctx, f, params, nil); err != nil {
		return nil, fmt.Errorf("substitute: %w", err)
	}
	return xlsx.Bytes(f)
}

// documentRecords reads the repeating document list parameter: a list of
// objects with no, name and version fields.
func documentRecords(params map[string]interface{}) []map[string]string {
	value, ok := placeholder.Resolve(params, "documents")
	if !ok {
		return nil
	}
	items, ok := value.([]interface{})
	if !ok {
		return nil
	}

	var records []map[string]string
	for _, item := range items {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		records = append(records, map[string]string{
			"document_no":      placeholder.Stringify(entry["no"]),
			"document_name":    placeholder.Stringify(entry["name"]),
			"document_version": placeholder.Stringify(entry["version"]),
		})
	}
	return records
}
