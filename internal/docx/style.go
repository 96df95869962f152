package docx

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Twips per centimeter; OOXML measures indents in twentieths of a point.
const twipsPerCm = 567

// Cm converts centimeters to twips.
func Cm(v float64) int {
	return int(v*twipsPerCm + 0.5)
}

// StyleProfile is the minimal visual formatting captured from an existing
// run before destructive replacement, so restored text does not look
// foreign next to the template's own authoring.
type StyleProfile struct {
	Font         string
	EastAsiaFont string
	SizeHalfPt   int
	Bold         bool
	Italic       bool
	Color        string // RRGGBB, empty for inherited

	ParagraphStyle    string // w:pStyle id carried over from the original unit
	Alignment         string // w:jc value, empty for inherited
	FirstLineIndentTw int
}

var (
	rPrReg       = regexp.MustCompile(`(?s)<w:rPr>(.*?)</w:rPr>`)
	pPrReg       = regexp.MustCompile(`(?s)<w:pPr>(.*?)</w:pPr>`)
	fontAsciiReg = regexp.MustCompile(`<w:rFonts[^>]*w:ascii="([^"]*)"`)
	fontEastReg  = regexp.MustCompile(`<w:rFonts[^>]*w:eastAsia="([^"]*)"`)
	sizeReg      = regexp.MustCompile(`<w:sz[^>]*w:val="(\d+)"`)
	colorReg     = regexp.MustCompile(`<w:color[^>]*w:val="([0-9a-fA-F]{6})"`)
	boldReg      = regexp.MustCompile(`<w:b(?:\s[^>]*)?/>|<w:b>`)
	boldOffReg   = regexp.MustCompile(`<w:b\s[^>]*w:val="(?:0|false|none)"`)
	italicReg    = regexp.MustCompile(`<w:i(?:\s[^>]*)?/>|<w:i>`)
	italicOffReg = regexp.MustCompile(`<w:i\s[^>]*w:val="(?:0|false|none)"`)
	pStyleReg    = regexp.MustCompile(`<w:pStyle[^>]*w:val="([^"]*)"`)
	jcReg        = regexp.MustCompile(`<w:jc[^>]*w:val="([^"]*)"`)
	firstLineReg = regexp.MustCompile(`<w:ind[^>]*w:firstLine="(\d+)"`)
)

// captureStyle reads the profile of the first styled run of a paragraph,
// falling back to zero values (unit default) when the paragraph carries no
// run properties.
func captureStyle(paragraph []byte) StyleProfile {
	var p StyleProfile
	if m := rPrReg.FindSubmatch(paragraph); m != nil {
		rPr := m[1]
		if f := fontAsciiReg.FindSubmatch(rPr); f != nil {
			p.Font = string(f[1])
		}
		if f := fontEastReg.FindSubmatch(rPr); f != nil {
			p.EastAsiaFont = string(f[1])
		}
		if s := sizeReg.FindSubmatch(rPr); s != nil {
			p.SizeHalfPt, _ = strconv.Atoi(string(s[1]))
		}
		if c := colorReg.FindSubmatch(rPr); c != nil {
			p.Color = strings.ToUpper(string(c[1]))
		}
		p.Bold = boldReg.Match(rPr) && !boldOffReg.Match(rPr)
		p.Italic = italicReg.Match(rPr) && !italicOffReg.Match(rPr)
	}
	if m := pPrReg.FindSubmatch(paragraph); m != nil {
		pPr := m[1]
		if s := pStyleReg.FindSubmatch(pPr); s != nil {
			p.ParagraphStyle = string(s[1])
		}
		if j := jcReg.FindSubmatch(pPr); j != nil {
			p.Alignment = string(j[1])
		}
		if f := firstLineReg.FindSubmatch(pPr); f != nil {
			p.FirstLineIndentTw, _ = strconv.Atoi(string(f[1]))
		}
	}
	return p
}

// runProps serializes the run-level part of the profile, with bold forced
// on or off for the specific run.
func (p StyleProfile) runProps(bold bool) string {
	var sb strings.Builder
	sb.WriteString("<w:rPr>")
	if p.Font != "" || p.EastAsiaFont != "" {
		sb.WriteString("<w:rFonts")
		if p.Font != "" {
			fmt.Fprintf(&sb, ` w:ascii=%q w:hAnsi=%q`, p.Font, p.Font)
		}
		if p.EastAsiaFont != "" {
			fmt.Fprintf(&sb, ` w:eastAsia=%q`, p.EastAsiaFont)
		}
		sb.WriteString("/>")
	}
	if bold {
		sb.WriteString("<w:b/>")
	}
	if p.Italic {
		sb.WriteString("<w:i/>")
	}
	if p.Color != "" {
		fmt.Fprintf(&sb, `<w:color w:val=%q/>`, p.Color)
	}
	if p.SizeHalfPt > 0 {
		fmt.Fprintf(&sb, `<w:sz w:val="%d"/><w:szCs w:val="%d"/>`, p.SizeHalfPt, p.SizeHalfPt)
	}
	sb.WriteString("</w:rPr>")
	return sb.String()
}

// paraProps serializes the paragraph-level part of the profile. The
// normalized form used after substitution keeps the original paragraph
// style id but pins alignment and first-line indent.
func (p StyleProfile) paraProps() string {
	var sb strings.Builder
	sb.WriteString("<w:pPr>")
	if p.ParagraphStyle != "" {
		fmt.Fprintf(&sb, `<w:pStyle w:val=%q/>`, p.ParagraphStyle)
	}
	if p.FirstLineIndentTw > 0 {
		fmt.Fprintf(&sb, `<w:ind w:firstLine="%d"/>`, p.FirstLineIndentTw)
	}
	if p.Alignment != "" {
		fmt.Fprintf(&sb, `<w:jc w:val=%q/>`, p.Alignment)
	}
	sb.WriteString("</w:pPr>")
	return sb.String()
}

// normalized returns the profile with the paragraph style substitutions
// use: left alignment, 2-character first-line indent.
func (p StyleProfile) normalized() StyleProfile {
	p.Alignment = "left"
	p.FirstLineIndentTw = Cm(0.74)
	return p
}
