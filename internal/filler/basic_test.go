package filler

import (
	"archive/zip"
	"bytes"
	"context"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	goimage "image"

	"github.com/go-kit/kit/log"
	"github.com/stretchr/testify/assert"

	"github.com/geoirb/doc-templater/internal/docx"
	"github.com/geoirb/doc-templater/internal/image"
	"github.com/geoirb/doc-templater/internal/placeholder"
)

func buildFlowTemplate(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	body := ""
	for _, text := range paragraphs {
		body += `<w:p><w:r><w:t>` + text + `</w:t></w:r></w:p>`
	}
	parts := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
			`<Default Extension="xml" ContentType="application/xml"/></Types>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
		"word/document.xml": `<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			body + `</w:body></w:document>`,
	}
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range parts {
		f, err := w.Create(name)
		assert.NoError(t, err)
		_, err = f.Write([]byte(content))
		assert.NoError(t, err)
	}
	assert.NoError(t, w.Close())
	return buf.Bytes()
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := goimage.NewRGBA(goimage.Rect(0, 0, w, h))
	img.Set(0, 0, color.Black)
	var buf bytes.Buffer
	assert.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newBasic(t *testing.T) *BasicSpecification {
	t.Helper()
	scanner, err := placeholder.New()
	assert.NoError(t, err)
	return &BasicSpecification{
		scanner: scanner,
		fetcher: image.NewFetcher(time.Second, log.NewNopLogger()),
		logger:  log.NewNopLogger(),
	}
}

func TestBasicFillRendersTableAndText(t *testing.T) {
	template := filepath.Join(t.TempDir(), "basic.docx")
	assert.NoError(t, os.WriteFile(template, buildFlowTemplate(t,
		"{{component_table}}",
		"theme {{theme_no}}",
		"{{power_supply}}",
	), 0o644))

	s := newBasic(t)
	data, err := s.Fill(context.Background(), template, map[string]interface{}{
		"component_table": "| Name | Qty |\n|---|---|\n| bolt | 4 |",
		"theme_no":        "T-1",
		"power_supply":    "DC 6V\n- batteries",
	})
	assert.NoError(t, err)

	d, err := docx.Load(data)
	assert.NoError(t, err)

	var tables, paragraphs int
	var texts []string
	for i := 0; i < d.Len(); i++ {
		switch d.Kind(i) {
		case docx.BlockTable:
			tables++
		case docx.BlockParagraph:
			paragraphs++
		}
		if text := d.Text(i); text != "" {
			texts = append(texts, text)
		}
	}
	assert.Equal(t, 1, tables)
	assert.Contains(t, texts, "theme T-1")
	assert.Contains(t, texts, "DC 6V")
	assert.Contains(t, texts, "batteries")
	for _, text := range texts {
		assert.NotContains(t, text, "{{")
	}
}

func TestBasicFillDerivesProductModelTable(t *testing.T) {
	template := filepath.Join(t.TempDir(), "basic.docx")
	assert.NoError(t, os.WriteFile(template, buildFlowTemplate(t, "{{product_model_table}}"), 0o644))

	s := newBasic(t)
	data, err := s.Fill(context.Background(), template, map[string]interface{}{
		"product_model": "A/B",
		"sales_name":    "X",
	})
	assert.NoError(t, err)

	d, err := docx.Load(data)
	assert.NoError(t, err)
	found := false
	for i := 0; i < d.Len(); i++ {
		if d.Kind(i) == docx.BlockTable {
			found = true
			assert.Contains(t, d.Text(i), "销售名称")
			assert.Contains(t, d.Text(i), "A")
			assert.Contains(t, d.Text(i), "X")
		}
	}
	assert.True(t, found)
}

func TestDownloadImagesSkipsFailedFetch(t *testing.T) {
	first := pngBytes(t, 192, 96)
	third := pngBytes(t, 96, 96)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/one.png":
			w.Write(first)
		case "/three.png":
			w.Write(third)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	d, err := docx.Load(buildFlowTemplate(t, "x"))
	assert.NoError(t, err)

	s := newBasic(t)
	images := s.downloadImages(context.Background(), d, []string{
		srv.URL + "/one.png",
		srv.URL + "/missing.png",
		srv.URL + "/three.png",
	})

	assert.Len(t, images, 2)
	assert.Equal(t, first, images[0].Data)
	assert.Equal(t, third, images[1].Data)
	assert.Equal(t, "png", images[0].Ext)
	// wider image scales to the same width but half the height
	assert.Greater(t, images[1].HeightCm, images[0].HeightCm)
	assert.InDelta(t, images[0].WidthCm, images[1].WidthCm, 0.001)
}
