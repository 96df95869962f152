package docx

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/geoirb/doc-templater/internal/markdown"
	"github.com/geoirb/doc-templater/internal/placeholder"
)

// Content is structural content that can replace a standalone placeholder
// unit: a rendered table, a sequence of markdown blocks, or image blocks.
// Content rendering to nothing means the placeholder unit is deleted with
// no replacement, never left as a dangling token.
type Content interface {
	render(d *Document, anchor StyleProfile) [][]byte
}

// ReplaceStandalone replaces every unit whose entire text is `{{key}}` with
// content. Body paragraphs are replaced in place; paragraphs nested in
// template table cells are replaced inside their cell. Placeholders sharing
// a unit with other literal text are left for text substitution. Returns
// the number of replaced units.
func (d *Document) ReplaceStandalone(scanner *placeholder.Scanner, key string, content Content) int {
	replaced := 0
	for i := 0; i < len(d.blocks); i++ {
		b := d.blocks[i]
		switch b.kind {
		case BlockParagraph:
			if k, ok := scanner.StandaloneKey(elementText(b.raw)); ok && k == key {
				rendered := content.render(d, captureStyle(b.raw))
				if len(rendered) == 0 {
					d.removeAt(i)
					i--
				} else {
					d.insertAt(i, true, rendered...)
					i += len(rendered) - 1
				}
				replaced++
			}
		case BlockTable:
			raw, n := d.replaceInTable(b.raw, scanner, key, content)
			if n > 0 {
				d.blocks[i].raw = raw
				replaced += n
			}
		}
	}
	return replaced
}

func (d *Document) replaceInTable(raw []byte, scanner *placeholder.Scanner, key string, content Content) ([]byte, int) {
	replaced := 0
	var out []byte
	prev := 0
	for _, span := range childSpans(raw, "w:p") {
		para := raw[span[0]:span[1]]
		k, ok := scanner.StandaloneKey(elementText(para))
		if !ok || k != key {
			continue
		}
		rendered := content.render(d, captureStyle(para))
		out = append(out, raw[prev:span[0]]...)
		if len(rendered) == 0 {
			// A cell must keep at least one paragraph to stay valid.
			out = append(out, "<w:p/>"...)
		}
		out = append(out, bytes.Join(rendered, nil)...)
		prev = span[1]
		replaced++
	}
	if out == nil {
		return raw, 0
	}
	return append(out, raw[prev:]...), replaced
}

// TableContent renders a parsed markdown table as a native bordered table:
// bold shaded header row, data rows, bracketing indent-only spacer
// paragraphs, and optionally maximal same-column merges of adjacent equal
// cells.
type TableContent struct {
	Table            markdown.Table
	MergeSameColumns bool
}

func (c TableContent) render(d *Document, anchor StyleProfile) [][]byte {
	if len(c.Table.Headers) == 0 {
		return nil
	}
	return [][]byte{
		[]byte(renderSpacerParagraph(Cm(0.74), Cm(0.74))),
		[]byte(renderTable(c.Table, c.MergeSameColumns, anchor)),
		[]byte(renderSpacerParagraph(Cm(0.74), Cm(1.48))),
	}
}

// BlocksContent renders a markdown block sequence as native paragraphs,
// headings and list items.
type BlocksContent struct {
	Blocks            []markdown.Block
	FirstLineIndentTw int
}

func (c BlocksContent) render(d *Document, anchor StyleProfile) [][]byte {
	var out [][]byte
	indent := c.FirstLineIndentTw
	if indent == 0 {
		indent = Cm(0.74)
	}
	for _, blk := range c.Blocks {
		out = append(out, []byte(renderBlock(blk, indent, anchor)))
	}
	return out
}

// Image is one downloaded image ready for insertion.
type Image struct {
	Data     []byte
	Ext      string // png, jpeg or gif
	WidthCm  float64
	HeightCm float64
}

// ImagesContent renders each image as its own indented paragraph in the
// supplied order.
type ImagesContent struct {
	Images []Image
}

func (c ImagesContent) render(d *Document, anchor StyleProfile) [][]byte {
	var out [][]byte
	for _, img := range c.Images {
		p, err := d.renderImageParagraph(img)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}

const (
	tableBorderSize = 4 // eighths of a point
	headerFill      = "D9D9D9"
)

var brReg = regexp.MustCompile(`(?i)<br\s*/?>`)

func renderTable(t markdown.Table, mergeSame bool, anchor StyleProfile) string {
	cols := len(t.Headers)
	var sb strings.Builder
	sb.WriteString("<w:tbl><w:tblPr>")
	fmt.Fprintf(&sb, `<w:tblInd w:w="%d" w:type="dxa"/>`, Cm(0.74))
	sb.WriteString("<w:tblBorders>")
	for _, side := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
		fmt.Fprintf(&sb, `<w:%s w:val="single" w:sz="%d" w:space="0" w:color="000000"/>`, side, tableBorderSize)
	}
	sb.WriteString("</w:tblBorders></w:tblPr><w:tblGrid>")
	for i := 0; i < cols; i++ {
		sb.WriteString("<w:gridCol/>")
	}
	sb.WriteString("</w:tblGrid>")

	// Header row: bold on a shaded background.
	sb.WriteString("<w:tr>")
	for _, h := range t.Headers {
		sb.WriteString("<w:tc><w:tcPr>")
		fmt.Fprintf(&sb, `<w:shd w:val="clear" w:color="auto" w:fill=%q/>`, headerFill)
		sb.WriteString("</w:tcPr>")
		sb.WriteString(renderCellParagraph(h, anchor, true))
		sb.WriteString("</w:tc>")
	}
	sb.WriteString("</w:tr>")

	merge := columnMerges(t, mergeSame)
	for r, row := range t.Rows {
		sb.WriteString("<w:tr>")
		for c := 0; c < cols; c++ {
			sb.WriteString("<w:tc><w:tcPr>")
			switch merge[r][c] {
			case mergeStart:
				sb.WriteString(`<w:vMerge w:val="restart"/>`)
			case mergeCont:
				sb.WriteString("<w:vMerge/>")
			}
			sb.WriteString("</w:tcPr>")
			if merge[r][c] == mergeCont {
				sb.WriteString("<w:p/>")
			} else {
				sb.WriteString(renderCellParagraph(row[c], anchor, false))
			}
			sb.WriteString("</w:tc>")
		}
		sb.WriteString("</w:tr>")
	}
	sb.WriteString("</w:tbl>")
	return sb.String()
}

type mergeState int

const (
	mergeNone mergeState = iota
	mergeStart
	mergeCont
)

// columnMerges scans each column top to bottom below the header and marks
// maximal runs of adjacent equal non-empty cells for vertical merging.
func columnMerges(t markdown.Table, enabled bool) [][]mergeState {
	merge := make([][]mergeState, len(t.Rows))
	for r := range merge {
		merge[r] = make([]mergeState, len(t.Headers))
	}
	if !enabled {
		return merge
	}
	for c := range t.Headers {
		r := 0
		for r < len(t.Rows) {
			end := r + 1
			for end < len(t.Rows) && t.Rows[end][c] == t.Rows[r][c] {
				end++
			}
			if end-r > 1 && t.Rows[r][c] != "" {
				merge[r][c] = mergeStart
				for k := r + 1; k < end; k++ {
					merge[k][c] = mergeCont
				}
			}
			r = end
		}
	}
	return merge
}

// renderCellParagraph writes one cell's paragraph, splitting `<br>` markers
// into native line breaks.
func renderCellParagraph(text string, anchor StyleProfile, bold bool) string {
	var sb strings.Builder
	sb.WriteString("<w:p>")
	lines := splitBr(text)
	for i, line := range lines {
		if line != "" {
			sb.WriteString("<w:r>")
			sb.WriteString(anchor.runProps(bold))
			fmt.Fprintf(&sb, `<w:t xml:space="preserve">%s</w:t>`, escapeXML(line))
			sb.WriteString("</w:r>")
		}
		if i < len(lines)-1 {
			sb.WriteString("<w:r><w:br/></w:r>")
		}
	}
	sb.WriteString("</w:p>")
	return sb.String()
}

func splitBr(text string) []string {
	parts := brReg.Split(text, -1)
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}

// renderBlock writes one markdown block as a paragraph in the anchor unit's
// style.
func renderBlock(b markdown.Block, indentTw int, anchor StyleProfile) string {
	var sb strings.Builder
	sb.WriteString("<w:p><w:pPr>")
	switch b.Kind {
	case markdown.KindHeading:
		fmt.Fprintf(&sb, `<w:pStyle w:val="Heading%d"/>`, b.Level)
	case markdown.KindBullet:
		sb.WriteString(`<w:pStyle w:val="ListBullet"/>`)
	case markdown.KindNumbered:
		sb.WriteString(`<w:pStyle w:val="ListNumber"/>`)
	default:
		fmt.Fprintf(&sb, `<w:ind w:firstLine="%d"/><w:jc w:val="left"/>`, indentTw)
	}
	sb.WriteString("</w:pPr>")
	for _, span := range b.Spans {
		if span.Text == "" {
			continue
		}
		sb.WriteString("<w:r>")
		if b.Kind == markdown.KindHeading {
			sb.WriteString(anchor.runProps(true))
		} else {
			sb.WriteString(anchor.runProps(span.Bold))
		}
		fmt.Fprintf(&sb, `<w:t xml:space="preserve">%s</w:t>`, escapeXML(span.Text))
		sb.WriteString("</w:r>")
	}
	sb.WriteString("</w:p>")
	return sb.String()
}

func renderSpacerParagraph(leftTw, rightTw int) string {
	return fmt.Sprintf(`<w:p><w:pPr><w:ind w:left="%d" w:right="%d"/></w:pPr></w:p>`, leftTw, rightTw)
}
