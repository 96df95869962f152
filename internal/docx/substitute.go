package docx

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/geoirb/doc-templater/internal/placeholder"
)

var headerFooterReg = regexp.MustCompile(`^word/(?:header|footer)\d*\.xml$`)

// SubstituteParagraph replaces resolvable placeholders in body block i per
// the style-preserving algorithm: concatenate the unit's text, substitute,
// capture the first run's profile, clear the runs and write back a single
// run carrying that profile with the normalized paragraph style. Untouched
// units are never restyled, which also makes the operation idempotent.
func (d *Document) SubstituteParagraph(i int, scanner *placeholder.Scanner, params map[string]interface{}, excluded map[string]struct{}) bool {
	b := d.blocks[i]
	if b.kind != BlockParagraph {
		return false
	}
	text := elementText(b.raw)
	out, changed := scanner.Substitute(text, params, excluded)
	if !changed {
		return false
	}
	profile := captureStyle(b.raw).normalized()
	b.raw = []byte(renderParagraphText(out, profile))
	return true
}

// SubstituteAll is the blanket fallback pass: body paragraphs get the full
// style-preserving treatment, table cells, headers and footers a run-level
// text replacement that keeps each run's own formatting.
func (d *Document) SubstituteAll(scanner *placeholder.Scanner, params map[string]interface{}, excluded map[string]struct{}) {
	for i, b := range d.blocks {
		switch b.kind {
		case BlockParagraph:
			d.SubstituteParagraph(i, scanner, params, excluded)
		case BlockTable:
			b.raw = substituteNested(b.raw, scanner, params, excluded)
		}
	}
	for _, name := range d.order {
		if headerFooterReg.MatchString(name) {
			d.parts[name] = substituteNested(d.parts[name], scanner, params, excluded)
		}
	}
}

// substituteNested applies the style-preserving substitution to every
// paragraph nested inside raw (table cells, header or footer content).
// Paragraphs without a resolvable placeholder are untouched.
func substituteNested(raw []byte, scanner *placeholder.Scanner, params map[string]interface{}, excluded map[string]struct{}) []byte {
	spans := childSpans(raw, "w:p")
	if len(spans) == 0 {
		return raw
	}
	var out []byte
	prev := 0
	for _, span := range spans {
		para := raw[span[0]:span[1]]
		text := elementText(para)
		replaced, changed := scanner.Substitute(text, params, excluded)
		if !changed {
			continue
		}
		profile := captureStyle(para).normalized()
		out = append(out, raw[prev:span[0]]...)
		out = append(out, renderParagraphText(replaced, profile)...)
		prev = span[1]
	}
	if out == nil {
		return raw
	}
	return append(out, raw[prev:]...)
}

// renderParagraphText builds a paragraph with a single styled run.
func renderParagraphText(text string, profile StyleProfile) string {
	var sb strings.Builder
	sb.WriteString("<w:p>")
	sb.WriteString(profile.paraProps())
	if text != "" {
		sb.WriteString("<w:r>")
		sb.WriteString(profile.runProps(profile.Bold))
		fmt.Fprintf(&sb, `<w:t xml:space="preserve">%s</w:t>`, escapeXML(text))
		sb.WriteString("</w:r>")
	}
	sb.WriteString("</w:p>")
	return sb.String()
}
