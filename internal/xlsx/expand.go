package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// AnchorPolicy selects how the insertion anchor for repeating rows is found.
// Templates disagree on this: older layouts reserve a fixed footer row,
// newer ones carry a marker cell that may drift as the template evolves.
// Both policies stay selectable per template.
type AnchorPolicy int

const (
	// AnchorFixed inserts new rows immediately before a fixed row index.
	AnchorFixed AnchorPolicy = iota
	// AnchorFooter locates the anchor row by searching for a marker text.
	AnchorFooter
)

// ColumnGroup binds one field of a repeating record to a merged column
// range, e.g. B-C for the sales name.
type ColumnGroup struct {
	From  string
	To    string
	Field string
}

// ExpandConfig describes one repeating region of a grid template.
type ExpandConfig struct {
	Sheet        string
	Policy       AnchorPolicy
	AnchorRow    int    // fixed policy: rows are inserted before this row
	FooterMarker string // footer policy: cell text locating the anchor row
	StartRow     int    // first pre-allocated data row, 1-based
	Preallocated int    // data rows the template ships with
	ReferenceRow int    // row whose style and height seed every data row
	Groups       []ColumnGroup
	Boundary     int // protected row: insertion never reaches past it (0 = none)
	SpacerRow    int // post-table spacer row given double height (0 = none)
}

// ExpandResult reports how the grid moved.
type ExpandResult struct {
	Inserted  int
	DataCount int
	Boundary  int // protected boundary after shifting
	SpacerRow int
}

// Expander performs row-expanding, style-cloning insertion of repeating
// records into a grid template.
type Expander struct {
}

// NewExpander ...
func NewExpander() *Expander {
	return &Expander{}
}

// ExpandAndFill writes records into the template's repeating region,
// inserting rows before the anchor when the data outgrows the pre-allocated
// rows. Each record row gets its column groups merged, valued, styled from
// the reference row (font one point smaller) and re-bordered on all four
// physical edges of every merge box.
func (e *Expander) ExpandAndFill(f *excelize.File, cfg ExpandConfig, records []map[string]string) (res ExpandResult, err error) {
	res.Boundary = cfg.Boundary
	res.SpacerRow = cfg.SpacerRow

	res.DataCount = len(records)
	if res.DataCount < 1 {
		res.DataCount = 1
	}

	anchor := cfg.AnchorRow
	if cfg.Policy == AnchorFooter {
		if anchor, err = e.findFooter(f, cfg); err != nil {
			return
		}
	}
	if cfg.Boundary > 0 && anchor > cfg.Boundary {
		err = fmt.Errorf("anchor row %d is past the protected boundary %d", anchor, cfg.Boundary)
		return
	}

	if res.DataCount > cfg.Preallocated {
		res.Inserted = res.DataCount - cfg.Preallocated
		if err = f.InsertRows(cfg.Sheet, anchor, res.Inserted); err != nil {
			err = fmt.Errorf("insert %d rows before %d: %w", res.Inserted, anchor, err)
			return
		}
		if res.Boundary >= anchor {
			res.Boundary += res.Inserted
		}
		if res.SpacerRow >= anchor {
			res.SpacerRow += res.Inserted
		}
	}

	refHeight, _ := f.GetRowHeight(cfg.Sheet, cfg.ReferenceRow)

	for i := 0; i < res.DataCount; i++ {
		row := cfg.StartRow + i
		var record map[string]string
		if i < len(records) {
			record = records[i]
		}
		for _, group := range cfg.Groups {
			if err = e.fillGroup(f, cfg, group, row, record[group.Field]); err != nil {
				return
			}
		}
		if refHeight > 0 {
			if err = f.SetRowHeight(cfg.Sheet, row, refHeight); err != nil {
				return
			}
		}
	}

	if res.SpacerRow > 0 && refHeight > 0 {
		err = f.SetRowHeight(cfg.Sheet, res.SpacerRow, refHeight*2)
	}
	return
}

func (e *Expander) findFooter(f *excelize.File, cfg ExpandConfig) (int, error) {
	cells, err := f.SearchSheet(cfg.Sheet, cfg.FooterMarker)
	if err != nil {
		return 0, fmt.Errorf("search footer marker: %w", err)
	}
	for _, cell := range cells {
		if _, row, err := excelize.CellNameToCoordinates(cell); err == nil && row >= cfg.StartRow {
			return row, nil
		}
	}
	if cfg.AnchorRow > 0 {
		return cfg.AnchorRow, nil
	}
	return 0, fmt.Errorf("footer marker %q not found", cfg.FooterMarker)
}

// fillGroup merges the group's column range on row, writes value into the
// merge's top-left cell and restores style and borders.
func (e *Expander) fillGroup(f *excelize.File, cfg ExpandConfig, group ColumnGroup, row int, value string) error {
	fromCol, err := excelize.ColumnNameToNumber(group.From)
	if err != nil {
		return err
	}
	toCol, err := excelize.ColumnNameToNumber(group.To)
	if err != nil {
		return err
	}
	topLeft, err := excelize.CoordinatesToCellName(fromCol, row)
	if err != nil {
		return err
	}
	bottomRight, err := excelize.CoordinatesToCellName(toCol, row)
	if err != nil {
		return err
	}

	if err = e.unmergeStale(f, cfg.Sheet, fromCol, toCol, row); err != nil {
		return err
	}
	if fromCol != toCol {
		if err = f.MergeCell(cfg.Sheet, topLeft, bottomRight); err != nil {
			return fmt.Errorf("merge %s:%s: %w", topLeft, bottomRight, err)
		}
	}
	if err = f.SetCellValue(cfg.Sheet, topLeft, value); err != nil {
		return err
	}
	if err = e.cloneReferenceStyle(f, cfg, group, topLeft, bottomRight); err != nil {
		return err
	}
	return e.applyEdgeBorders(f, cfg.Sheet, fromCol, toCol, row, row)
}

// unmergeStale removes any merge region overlapping the target range so no
// physical cell ever belongs to two regions.
func (e *Expander) unmergeStale(f *excelize.File, sheet string, fromCol, toCol, row int) error {
	merges, err := f.GetMergeCells(sheet)
	if err != nil {
		return err
	}
	for _, m := range merges {
		c1, r1, err1 := excelize.CellNameToCoordinates(m.GetStartAxis())
		c2, r2, err2 := excelize.CellNameToCoordinates(m.GetEndAxis())
		if err1 != nil || err2 != nil {
			continue
		}
		if r1 > row || r2 < row || c1 > toCol || c2 < fromCol {
			continue
		}
		if c1 == fromCol && c2 == toCol && r1 == row && r2 == row {
			continue
		}
		if err = f.UnmergeCell(sheet, m.GetStartAxis(), m.GetEndAxis()); err != nil {
			return err
		}
	}
	return nil
}

// cloneReferenceStyle copies the reference row's style onto the merge, with
// the font one point smaller. A merge only inherits its anchor cell's stored
// style, so the style is applied across the whole range.
func (e *Expander) cloneReferenceStyle(f *excelize.File, cfg ExpandConfig, group ColumnGroup, topLeft, bottomRight string) error {
	refCell, err := excelize.JoinCellName(group.From, cfg.ReferenceRow)
	if err != nil {
		return err
	}
	styleID, err := f.GetCellStyle(cfg.Sheet, refCell)
	if err != nil {
		return err
	}
	style, err := f.GetStyle(styleID)
	if err != nil {
		return err
	}
	if style.Font != nil && style.Font.Size > 1 {
		style.Font.Size--
	}
	cloned, err := f.NewStyle(style)
	if err != nil {
		return err
	}
	return f.SetCellStyle(cfg.Sheet, topLeft, bottomRight, cloned)
}

// applyEdgeBorders re-applies border styling to all four physical edges of
// the bounding box: border rendering is evaluated per physical cell, not per
// merge region, so every edge cell must carry its own side.
func (e *Expander) applyEdgeBorders(f *excelize.File, sheet string, fromCol, toCol, fromRow, toRow int) error {
	for col := fromCol; col <= toCol; col++ {
		for row := fromRow; row <= toRow; row++ {
			var sides []string
			if row == fromRow {
				sides = append(sides, "top")
			}
			if row == toRow {
				sides = append(sides, "bottom")
			}
			if col == fromCol {
				sides = append(sides, "left")
			}
			if col == toCol {
				sides = append(sides, "right")
			}
			if len(sides) == 0 {
				continue
			}
			if err := e.borderCell(f, sheet, col, row, sides); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Expander) borderCell(f *excelize.File, sheet string, col, row int, sides []string) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	styleID, err := f.GetCellStyle(sheet, cell)
	if err != nil {
		return err
	}
	style, err := f.GetStyle(styleID)
	if err != nil {
		return err
	}
	for _, side := range sides {
		found := false
		for i := range style.Border {
			if style.Border[i].Type == side {
				style.Border[i].Style = 1
				style.Border[i].Color = "000000"
				found = true
			}
		}
		if !found {
			style.Border = append(style.Border, excelize.Border{Type: side, Style: 1, Color: "000000"})
		}
	}
	bordered, err := f.NewStyle(style)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cell, cell, bordered)
}
