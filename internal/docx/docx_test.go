package docx

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/geoirb/doc-templater/internal/markdown"
	"github.com/geoirb/doc-templater/internal/placeholder"
)

func buildDocx(t *testing.T, body string) []byte {
	t.Helper()
	parts := map[string]string{
		contentTypesPart: `<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
			`<Default Extension="xml" ContentType="application/xml"/></Types>`,
		documentRelsPart: `<?xml version="1.0"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
			`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/></Relationships>`,
		documentPart: `<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			body +
			`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/><w:pgMar w:top="1440" w:right="1417" w:bottom="1440" w:left="1417"/></w:sectPr></w:body></w:document>`,
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

func para(text string) string {
	return `<w:p><w:pPr><w:jc w:val="both"/></w:pPr><w:r><w:rPr><w:rFonts w:ascii="微软雅黑" w:eastAsia="微软雅黑"/><w:sz w:val="20"/><w:color w:val="7F7F7F"/></w:rPr><w:t>` +
		text + `</w:t></w:r></w:p>`
}

func newScanner(t *testing.T) *placeholder.Scanner {
	t.Helper()
	s, err := placeholder.New()
	assert.NoError(t, err)
	return s
}

func TestLoadSplitsBodyBlocks(t *testing.T) {
	d, err := Load(buildDocx(t, para("first")+`<w:tbl><w:tr><w:tc>`+para("in cell")+`</w:tc></w:tr></w:tbl>`+para("last")))
	assert.NoError(t, err)

	assert.Equal(t, 4, d.Len()) // two paragraphs, one table, the sectPr
	assert.Equal(t, BlockParagraph, d.Kind(0))
	assert.Equal(t, BlockTable, d.Kind(1))
	assert.Equal(t, BlockOther, d.Kind(3))
	assert.Equal(t, "first", d.Text(0))
	assert.Equal(t, "in cell", d.Text(1))
}

func TestSubstituteParagraphKeepsStyleAndIsIdempotent(t *testing.T) {
	d, err := Load(buildDocx(t, para("theme {{theme_no}} of {product_name}")))
	assert.NoError(t, err)
	scanner := newScanner(t)
	params := map[string]interface{}{"theme_no": "T-100", "product_name": "Widget"}

	assert.True(t, d.SubstituteParagraph(0, scanner, params, nil))
	assert.Equal(t, "theme T-100 of Widget", d.Text(0))
	raw := string(d.blocks[0].raw)
	assert.Contains(t, raw, `w:ascii="微软雅黑"`)
	assert.Contains(t, raw, `w:val="7F7F7F"`)
	assert.Contains(t, raw, `<w:jc w:val="left"/>`)

	assert.False(t, d.SubstituteParagraph(0, scanner, params, nil))
	assert.Equal(t, raw, string(d.blocks[0].raw))
}

func TestSubstituteAllReachesTableCells(t *testing.T) {
	d, err := Load(buildDocx(t, `<w:tbl><w:tr><w:tc>`+para("cell {{theme_no}}")+`</w:tc></w:tr></w:tbl>`))
	assert.NoError(t, err)

	d.SubstituteAll(newScanner(t), map[string]interface{}{"theme_no": "T-100"}, nil)
	assert.Equal(t, "cell T-100", d.Text(0))
}

func TestSubstituteParagraphExcluded(t *testing.T) {
	d, err := Load(buildDocx(t, para("{{component_table}}")))
	assert.NoError(t, err)

	changed := d.SubstituteParagraph(0, newScanner(t), map[string]interface{}{"component_table": "|a|"},
		map[string]struct{}{"component_table": {}})
	assert.False(t, changed)
	assert.Equal(t, "{{component_table}}", d.Text(0))
}

func TestReplaceStandaloneWithTable(t *testing.T) {
	d, err := Load(buildDocx(t, para("before")+para("{{component_table}}")+para("after")))
	assert.NoError(t, err)
	table := markdown.ParseTable("| Name | Qty |\n|------|-----|\n| bolt | 4 |\n| nut  | 2 |")
	assert.NotEmpty(t, table.Headers)

	n := d.ReplaceStandalone(newScanner(t), "component_table", TableContent{Table: table})
	assert.Equal(t, 1, n)

	// spacer, table, spacer replace the placeholder paragraph
	assert.Equal(t, 6, d.Len())
	assert.Equal(t, BlockTable, d.Kind(2))
	raw := string(d.blocks[2].raw)
	assert.Contains(t, raw, `<w:shd w:val="clear" w:color="auto" w:fill="D9D9D9"/>`)
	assert.Contains(t, raw, `<w:insideH w:val="single" w:sz="4" w:space="0" w:color="000000"/>`)
	assert.Contains(t, raw, ">bolt</w:t>")
	assert.NotContains(t, raw, "component_table")
	assert.Contains(t, string(d.blocks[1].raw), `w:left="420"`)
}

func TestReplaceStandaloneMergesEqualColumnRuns(t *testing.T) {
	d, err := Load(buildDocx(t, para("{{product_model_table}}")))
	assert.NoError(t, err)
	table := markdown.Table{
		Headers: []string{"Model", "Sales"},
		Rows:    [][]string{{"A", "X"}, {"A", "Y"}, {"B", "X"}},
	}

	d.ReplaceStandalone(newScanner(t), "product_model_table", TableContent{Table: table, MergeSameColumns: true})
	raw := string(d.blocks[1].raw)
	assert.Equal(t, 1, strings.Count(raw, `<w:vMerge w:val="restart"/>`))
	assert.Equal(t, 1, strings.Count(raw, `<w:vMerge/>`))
}

func TestReplaceStandaloneWithBlocks(t *testing.T) {
	d, err := Load(buildDocx(t, para("{{function_desc}}")))
	assert.NoError(t, err)
	blocks := markdown.Render("# Scope\n\nBody with **bold** part\n- item one")

	n := d.ReplaceStandalone(newScanner(t), "function_desc", BlocksContent{Blocks: blocks})
	assert.Equal(t, 1, n)
	assert.Equal(t, len(blocks)+1, d.Len()) // rendered blocks plus the sectPr

	assert.Contains(t, string(d.blocks[0].raw), `<w:pStyle w:val="Heading1"/>`)
	body := string(d.blocks[2].raw)
	assert.Contains(t, body, `<w:ind w:firstLine="420"/>`)
	assert.Contains(t, body, "<w:b/>")
	assert.Contains(t, string(d.blocks[3].raw), `<w:pStyle w:val="ListBullet"/>`)
}

func TestReplaceStandaloneEmptyContentRemovesParagraph(t *testing.T) {
	d, err := Load(buildDocx(t, para("keep")+para("{{component_table}}")))
	assert.NoError(t, err)

	n := d.ReplaceStandalone(newScanner(t), "component_table", TableContent{})
	assert.Equal(t, 1, n)
	assert.Equal(t, 2, d.Len())
	assert.Equal(t, "keep", d.Text(0))
}

func TestReplaceStandaloneInsideTableCell(t *testing.T) {
	d, err := Load(buildDocx(t, `<w:tbl><w:tr><w:tc>`+para("{{appearance_image}}")+`</w:tc></w:tr></w:tbl>`))
	assert.NoError(t, err)
	img := Image{Data: []byte{0x89, 'P', 'N', 'G'}, Ext: "png", WidthCm: 10, HeightCm: 5}

	n := d.ReplaceStandalone(newScanner(t), "appearance_image", ImagesContent{Images: []Image{img}})
	assert.Equal(t, 1, n)
	raw := string(d.blocks[0].raw)
	assert.Contains(t, raw, "<w:drawing>")
	assert.NotContains(t, raw, "appearance_image")
}

func TestImageContentRegistersPartAndRelationship(t *testing.T) {
	d, err := Load(buildDocx(t, para("{{appearance_image}}")))
	assert.NoError(t, err)
	img := Image{Data: []byte{0x89, 'P', 'N', 'G'}, Ext: "png", WidthCm: 10, HeightCm: 5}

	d.ReplaceStandalone(newScanner(t), "appearance_image", ImagesContent{Images: []Image{img}})

	assert.Equal(t, img.Data, d.parts["word/media/image1.png"])
	rels := string(d.parts[documentRelsPart])
	assert.Contains(t, rels, `Id="rId2"`)
	assert.Contains(t, rels, `Target="media/image1.png"`)
	assert.Contains(t, string(d.parts[contentTypesPart]), `Extension="png"`)

	raw := string(d.blocks[0].raw)
	assert.Contains(t, raw, `r:embed="rId2"`)
	assert.Contains(t, raw, `cx="3600000" cy="1800000"`)
}

func TestBytesRoundTrip(t *testing.T) {
	src := buildDocx(t, para("hello {{theme_no}}"))
	d, err := Load(src)
	assert.NoError(t, err)
	d.SubstituteAll(newScanner(t), map[string]interface{}{"theme_no": "T-1"}, nil)

	out, err := d.Bytes()
	assert.NoError(t, err)
	reloaded, err := Load(out)
	assert.NoError(t, err)
	assert.Equal(t, "hello T-1", reloaded.Text(0))
	assert.Contains(t, string(reloaded.parts[documentRelsPart]), `Id="rId1"`)
}

func TestPageContentWidth(t *testing.T) {
	d, err := Load(buildDocx(t, para("x")))
	assert.NoError(t, err)
	// 11906 - 2*1417 twips
	assert.InDelta(t, 16.0, d.PageContentWidthCm(), 0.05)
}
