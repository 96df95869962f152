package xlsx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/xuri/excelize/v2"

	"github.com/geoirb/doc-templater/internal/placeholder"
)

const (
	qrCodeKeyPrefix = "qr_code_"
	imageKeyPrefix  = "image_"

	// row height is measured in points, picture size in pixels
	pointsToPixels = 1.333
)

type qrcode interface {
	Create(payload string, size int) ([]byte, error)
}

type fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, bool)
}

// Facade mutates grid documents: blanket placeholder substitution plus
// qr-code and image cells. Row expansion for repeating data lives in
// Expander.
type Facade struct {
	scanner *placeholder.Scanner
	qrcode  qrcode
	fetcher fetcher

	logger log.Logger
}

// NewFacade ...
func NewFacade(
	scanner *placeholder.Scanner,
	qrcode qrcode,
	fetcher fetcher,
	logger log.Logger,
) *Facade {
	return &Facade{
		scanner: scanner,
		qrcode:  qrcode,
		fetcher: fetcher,
		logger:  logger,
	}
}

// Open loads a grid template.
func Open(path string) (*excelize.File, error) {
	return excelize.OpenFile(path)
}

// Bytes serializes the workbook.
func Bytes(f *excelize.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteTo streams the workbook.
func WriteTo(f *excelize.File, w io.Writer) error {
	return f.Write(w)
}

// Substitute is the blanket pass over every sheet and cell: resolvable text
// placeholders are replaced in place, qr-code placeholders become embedded
// pictures, image placeholders download and embed their URLs. Absent keys
// stay literal so unrelated template text survives untouched.
func (s *Facade) Substitute(ctx context.Context, f *excelize.File, params map[string]interface{}, excluded map[string]struct{}) error {
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return fmt.Errorf("sheet %s: %w", sheet, err)
		}
		for rowIdx, row := range rows {
			for colIdx, cellValue := range row {
				if cellValue == "" || !s.scanner.Has(cellValue) {
					continue
				}
				cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
				if err != nil {
					continue
				}
				if err := s.fillCell(ctx, f, sheet, cell, rowIdx+1, cellValue, params, excluded); err != nil {
					return fmt.Errorf("cell %s!%s: %w", sheet, cell, err)
				}
			}
		}
	}
	return nil
}

func (s *Facade) fillCell(ctx context.Context, f *excelize.File, sheet, cell string, row int, cellValue string, params map[string]interface{}, excluded map[string]struct{}) error {
	if key, ok := s.scanner.StandaloneKey(cellValue); ok {
		if _, skip := excluded[key]; skip {
			return nil
		}
		switch {
		case strings.HasPrefix(key, qrCodeKeyPrefix):
			return s.qrCodeCell(f, sheet, cell, row, key, params)
		case strings.HasPrefix(key, imageKeyPrefix):
			return s.imageCell(ctx, f, sheet, cell, key, params)
		}
	}
	if out, changed := s.scanner.Substitute(cellValue, params, excluded); changed {
		return f.SetCellValue(sheet, cell, out)
	}
	return nil
}

// qrCodeCell renders the resolved payloads as qr pictures sized to the row
// height, one per merged cell width step.
func (s *Facade) qrCodeCell(f *excelize.File, sheet, cell string, row int, key string, params map[string]interface{}) error {
	value, ok := placeholder.Resolve(params, key)
	if !ok {
		return nil
	}
	payloads := toStrings(value)
	if len(payloads) == 0 {
		return nil
	}

	height, _ := f.GetRowHeight(sheet, row)
	size := int(height * pointsToPixels)
	if size <= 0 {
		size = 64
	}

	col, _, err := excelize.CellNameToCoordinates(cell)
	if err != nil {
		return err
	}
	for _, payload := range payloads {
		data, err := s.qrcode.Create(payload, size)
		if err != nil {
			return fmt.Errorf("qrcode generate: %w", err)
		}
		axis, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		if err = f.AddPictureFromBytes(sheet, axis, &excelize.Picture{
			Extension: ".png",
			File:      data,
		}); err != nil {
			return err
		}
		if err = f.SetCellValue(sheet, axis, ""); err != nil {
			return err
		}
		col += mergedWidth(f, sheet, axis)
	}
	return nil
}

// imageCell downloads every URL of the field and embeds the pictures at the
// cell. One failed download skips that picture only.
func (s *Facade) imageCell(ctx context.Context, f *excelize.File, sheet, cell, key string, params map[string]interface{}) error {
	value, ok := placeholder.Resolve(params, key)
	if !ok {
		return nil
	}
	logger := log.WithPrefix(s.logger, "method", "imageCell", "cell", cell)
	for _, url := range s.scanner.ImageURLs(value) {
		data, ok := s.fetcher.Fetch(ctx, url)
		if !ok {
			level.Warn(logger).Log("msg", "image skipped", "url", url)
			continue
		}
		if err := f.AddPictureFromBytes(sheet, cell, &excelize.Picture{
			Extension: ".png",
			File:      data,
			Format:    &excelize.GraphicOptions{AutoFit: true},
		}); err != nil {
			level.Warn(logger).Log("msg", "image embed", "url", url, "err", err)
		}
	}
	return f.SetCellValue(sheet, cell, "")
}

func mergedWidth(f *excelize.File, sheet, cell string) int {
	col, row, err := excelize.CellNameToCoordinates(cell)
	if err != nil {
		return 1
	}
	merges, err := f.GetMergeCells(sheet)
	if err != nil {
		return 1
	}
	for _, m := range merges {
		c1, r1, err1 := excelize.CellNameToCoordinates(m.GetStartAxis())
		c2, r2, err2 := excelize.CellNameToCoordinates(m.GetEndAxis())
		if err1 != nil || err2 != nil {
			continue
		}
		if row >= r1 && row <= r2 && col >= c1 && col <= c2 {
			return c2 - c1 + 1
		}
	}
	return 1
}

func toStrings(value interface{}) []string {
	switch v := value.(type) {
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []string:
		return v
	case []interface{}:
		var out []string
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
