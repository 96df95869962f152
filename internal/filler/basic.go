package filler

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"

	"github.com/geoirb/doc-templater/internal/docx"
	"github.com/geoirb/doc-templater/internal/image"
	"github.com/geoirb/doc-templater/internal/markdown"
	"github.com/geoirb/doc-templater/internal/placeholder"
)

type imageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, bool)
}

const productModelTableField = "product_model_table"

// Fields whose markdown value becomes a native table.
var markdownTableFields = map[string]struct{}{
	"definition_term_table": {},
	"component_table":       {},
	"function_table":        {},
	"function_block_table":  {},
	"performance_table":     {},
}

// Fields carrying one or more image URLs.
var imageListFields = map[string]struct{}{
	"appearance_image":     {},
	"function_block_image": {},
}

// Fields rendered with a 4-character first-line indent instead of the
// usual 2.
var indent4Fields = map[string]struct{}{
	"dimensions_and_weight":            {},
	"power_supply":                     {},
	"use_temperature_humidity_range":   {},
	"storage_and_transport_conditions": {},
	"durability":                       {},
}

var productModelTableHeaders = []string{
	"销售名称",
	"Catalog number",
	"OHQ商品型式名",
	"Basic UDI-DI code",
	"医疗器械类别分类",
}

// BasicSpecification fills the flow-document product specification:
// derived product-model table, markdown tables, image lists, markdown body
// text, then a blanket text pass over whatever is left.
type BasicSpecification struct {
	scanner *placeholder.Scanner
	fetcher imageFetcher

	logger log.Logger
}

// Fill ...
func (s *BasicSpecification) Fill(ctx context.Context, templatePath string, params map[string]interface{}) ([]byte, error) {
	d, err := docx.Open(templatePath)
	if err != nil {
		return nil, fmt.Errorf("open template: %w", err)
	}

	if records := modelRecords(params); len(records) > 0 {
		d.ReplaceStandalone(s.scanner, productModelTableField, docx.TableContent{
			Table: productModelTable(records),
		})
	}

	for key := range markdownTableFields {
		text := strings.TrimSpace(paramString(params, key))
		if text == "" {
			continue
		}
		d.ReplaceStandalone(s.scanner, key, docx.TableContent{Table: markdown.ParseTable(text)})
	}

	for key := range imageListFields {
		value, ok := placeholder.Resolve(params, key)
		if !ok {
			continue
		}
		urls := s.scanner.ImageURLs(value)
		if len(urls) == 0 {
			continue
		}
		d.ReplaceStandalone(s.scanner, key, docx.ImagesContent{
			Images: s.downloadImages(ctx, d, urls),
		})
	}

	s.renderMarkdownBodies(d, params)

	d.SubstituteAll(s.scanner, params, structuralFields())
	return d.Bytes()
}

// renderMarkdownBodies turns every remaining standalone placeholder whose
// parameter is plain text into markdown block paragraphs.
func (s *BasicSpecification) renderMarkdownBodies(d *docx.Document, params map[string]interface{}) {
	var keys []string
	seen := make(map[string]struct{})
	for i := 0; i < d.Len(); i++ {
		if d.Kind(i) != docx.BlockParagraph {
			continue
		}
		key, ok := s.scanner.StandaloneKey(d.Text(i))
		if !ok {
			continue
		}
		if _, structural := structuralFields()[key]; structural {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}

	for _, key := range keys {
		value, ok := placeholder.Resolve(params, key)
		if !ok {
			continue
		}
		text := strings.TrimSpace(placeholder.Stringify(value))
		if text == "" {
			continue
		}
		indent := docx.Cm(0.74)
		if _, wide := indent4Fields[key]; wide {
			indent = docx.Cm(1.48)
		}
		d.ReplaceStandalone(s.scanner, key, docx.BlocksContent{
			Blocks:            markdown.Render(text),
			FirstLineIndentTw: indent,
		})
	}
}

// downloadImages fetches and scales each URL to the page content width
// minus the image block's own indents. A failed download or undecodable
// payload skips that image only.
func (s *BasicSpecification) downloadImages(ctx context.Context, d *docx.Document, urls []string) []docx.Image {
	availableCm := d.PageContentWidthCm() - 0.74 - 1.48
	if availableCm <= 0 {
		availableCm = 10.0
	}

	images := make([]docx.Image, 0, len(urls))
	for _, url := range urls {
		data, ok := s.fetcher.Fetch(ctx, url)
		if !ok {
			continue
		}
		wCm, hCm, ok := image.FitToWidth(data, availableCm)
		if !ok {
			level.Warn(s.logger).Log("msg", "image size not decodable", "url", url)
			continue
		}
		images = append(images, docx.Image{
			Data:     data,
			Ext:      image.Format(data),
			WidthCm:  wCm,
			HeightCm: hCm,
		})
	}
	return images
}

// structuralFields lists the placeholders the blanket text pass must leave
// alone: their values are tables, images or derived records, not text.
func structuralFields() map[string]struct{} {
	excluded := map[string]struct{}{productModelTableField: {}}
	for key := range markdownTableFields {
		excluded[key] = struct{}{}
	}
	for key := range imageListFields {
		excluded[key] = struct{}{}
	}
	return excluded
}

func productModelTable(records []map[string]string) markdown.Table {
	table := markdown.Table{Headers: productModelTableHeaders}
	for _, record := range records {
		table.Rows = append(table.Rows, []string{
			record[fieldSalesName],
			record[fieldCatalogNumber],
			record[fieldProductModel],
			record[fieldBasicUDIDICode],
			record[fieldDeviceCategory],
		})
	}
	return table
}
