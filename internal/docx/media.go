package docx

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	pgSzReg       = regexp.MustCompile(`<w:pgSz[^>]*\bw:w="(\d+)"`)
	pgMarLeftReg  = regexp.MustCompile(`<w:pgMar[^>]*\bw:left="(\d+)"`)
	pgMarRightReg = regexp.MustCompile(`<w:pgMar[^>]*\bw:right="(\d+)"`)
)

func attrInt(doc []byte, reg *regexp.Regexp) int {
	m := reg.FindSubmatch(doc)
	if m == nil {
		return 0
	}
	v, err := strconv.Atoi(string(m[1]))
	if err != nil {
		return 0
	}
	return v
}

const emuPerCm = 360000

// EMU converts centimeters to English Metric Units.
func EMU(cm float64) int64 {
	return int64(cm * emuPerCm)
}

// addImagePart stores image bytes as a new media part, registers the part
// in the document relationships and content types, and returns the
// relationship id referencing it.
func (d *Document) addImagePart(data []byte, ext string) (string, error) {
	d.mediaSeq++
	name := fmt.Sprintf("word/media/image%d.%s", d.mediaSeq, ext)
	d.addPart(name, data)

	d.relIDMax++
	rID := fmt.Sprintf("rId%d", d.relIDMax)
	if err := d.appendRelationship(rID, relationshipImageType, strings.TrimPrefix(name, "word/")); err != nil {
		return "", err
	}
	d.registerContentType(ext)
	return rID, nil
}

func (d *Document) appendRelationship(id, relType, target string) error {
	rels, ok := d.parts[documentRelsPart]
	if !ok {
		return fmt.Errorf("missing %s", documentRelsPart)
	}
	close := bytes.LastIndex(rels, []byte("</Relationships>"))
	if close < 0 {
		return fmt.Errorf("malformed %s", documentRelsPart)
	}
	entry := fmt.Sprintf(`<Relationship Id=%q Type=%q Target=%q/>`, id, relType, target)
	var out bytes.Buffer
	out.Write(rels[:close])
	out.WriteString(entry)
	out.Write(rels[close:])
	d.parts[documentRelsPart] = out.Bytes()
	return nil
}

func (d *Document) registerContentType(ext string) {
	types, ok := d.parts[contentTypesPart]
	if !ok {
		return
	}
	marker := []byte(fmt.Sprintf(`Extension="%s"`, ext))
	if bytes.Contains(types, marker) {
		return
	}
	close := bytes.LastIndex(types, []byte("</Types>"))
	if close < 0 {
		return
	}
	mime := "image/" + ext
	entry := fmt.Sprintf(`<Default Extension=%q ContentType=%q/>`, ext, mime)
	var out bytes.Buffer
	out.Write(types[:close])
	out.WriteString(entry)
	out.Write(types[close:])
	d.parts[contentTypesPart] = out.Bytes()
}

// renderImageParagraph builds an indented paragraph holding one inline
// picture at the given physical size.
func (d *Document) renderImageParagraph(img Image) ([]byte, error) {
	rID, err := d.addImagePart(img.Data, img.Ext)
	if err != nil {
		return nil, err
	}
	d.drawSeq++
	cx, cy := EMU(img.WidthCm), EMU(img.HeightCm)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<w:p><w:pPr><w:ind w:left="%d" w:right="%d"/></w:pPr><w:r><w:drawing>`, Cm(0.74), Cm(1.48))
	fmt.Fprintf(&sb, `<wp:inline xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing" distT="0" distB="0" distL="0" distR="0">`)
	fmt.Fprintf(&sb, `<wp:extent cx="%d" cy="%d"/>`, cx, cy)
	fmt.Fprintf(&sb, `<wp:docPr id="%d" name="Picture %d"/>`, d.drawSeq, d.drawSeq)
	sb.WriteString(`<a:graphic xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">`)
	sb.WriteString(`<a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture">`)
	sb.WriteString(`<pic:pic xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture">`)
	fmt.Fprintf(&sb, `<pic:nvPicPr><pic:cNvPr id="%d" name="Picture %d"/><pic:cNvPicPr/></pic:nvPicPr>`, d.drawSeq, d.drawSeq)
	fmt.Fprintf(&sb, `<pic:blipFill><a:blip xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" r:embed=%q/><a:stretch><a:fillRect/></a:stretch></pic:blipFill>`, rID)
	fmt.Fprintf(&sb, `<pic:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="%d" cy="%d"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr>`, cx, cy)
	sb.WriteString(`</pic:pic></a:graphicData></a:graphic></wp:inline></w:drawing></w:r></w:p>`)
	return []byte(sb.String()), nil
}

// PageContentWidthCm reads the section page size and margins and returns
// the usable content width. Documents without an explicit section fall back
// to A4 with 2.5cm margins.
func (d *Document) PageContentWidthCm() float64 {
	const fallback = 21.0 - 2*2.5
	doc, ok := d.parts[documentPart]
	if !ok {
		return fallback
	}
	pgSz := attrInt(doc, pgSzReg)
	if pgSz == 0 {
		return fallback
	}
	left := attrInt(doc, pgMarLeftReg)
	right := attrInt(doc, pgMarRightReg)
	if left == 0 && right == 0 {
		left, right = Cm(2.5), Cm(2.5)
	}
	width := pgSz - left - right
	if width <= 0 {
		return fallback
	}
	return float64(width) / twipsPerCm
}
