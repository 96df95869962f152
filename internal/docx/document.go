package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"

	"github.com/natefinch/atomic"
)

const (
	documentPart     = "word/document.xml"
	documentRelsPart = "word/_rels/document.xml.rels"
	contentTypesPart = "[Content_Types].xml"

	relationshipImageType = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
)

// BlockKind classifies one body-level unit of a flow document.
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockTable
	BlockOther // sectPr, bookmarks and anything else we pass through
)

// block is one body child of word/document.xml. Untouched blocks keep their
// original bytes and are re-emitted verbatim, so unrelated template content
// can never be corrupted by a fill.
type block struct {
	kind BlockKind
	raw  []byte
}

// Document is a flow document: an ordered arena of body blocks plus every
// other package part preserved byte-for-byte. Mutation is positional
// insertion and removal of blocks, never random-access rewrite.
type Document struct {
	parts map[string][]byte
	order []string

	prefix []byte // document.xml up to and including the body open tag
	suffix []byte // document.xml from the body close tag on
	blocks []*block

	relIDMax int
	mediaSeq int
	drawSeq  int
}

var relIDReg = regexp.MustCompile(`Id="rId(\d+)"`)

// Open loads a flow document from path.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	return Load(data)
}

// Load parses a flow document from bytes.
func Load(data []byte) (*Document, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open docx container: %w", err)
	}

	d := &Document{
		parts: make(map[string][]byte, len(r.File)),
	}
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open part %s: %w", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read part %s: %w", f.Name, err)
		}
		d.parts[f.Name] = content
		d.order = append(d.order, f.Name)
	}

	doc, ok := d.parts[documentPart]
	if !ok {
		return nil, fmt.Errorf("missing %s", documentPart)
	}
	if err = d.splitBody(doc); err != nil {
		return nil, err
	}

	if rels, ok := d.parts[documentRelsPart]; ok {
		for _, m := range relIDReg.FindAllSubmatch(rels, -1) {
			if id, err := strconv.Atoi(string(m[1])); err == nil && id > d.relIDMax {
				d.relIDMax = id
			}
		}
	}
	return d, nil
}

func (d *Document) splitBody(doc []byte) error {
	open := bytes.Index(doc, []byte("<w:body"))
	if open < 0 {
		return fmt.Errorf("document has no body")
	}
	openEnd := bytes.IndexByte(doc[open:], '>')
	if openEnd < 0 {
		return fmt.Errorf("malformed body open tag")
	}
	bodyStart := open + openEnd + 1
	bodyEnd := bytes.LastIndex(doc, []byte("</w:body>"))
	if bodyEnd < 0 || bodyEnd < bodyStart {
		return fmt.Errorf("document body is not closed")
	}

	d.prefix = doc[:bodyStart]
	d.suffix = doc[bodyEnd:]
	for _, raw := range splitElements(doc[bodyStart:bodyEnd]) {
		d.blocks = append(d.blocks, &block{kind: kindOf(raw), raw: raw})
	}
	return nil
}

func kindOf(raw []byte) BlockKind {
	switch elementName(raw) {
	case "w:p":
		return BlockParagraph
	case "w:tbl":
		return BlockTable
	default:
		return BlockOther
	}
}

// Len returns the number of body blocks.
func (d *Document) Len() int {
	return len(d.blocks)
}

// Kind returns the kind of block i.
func (d *Document) Kind(i int) BlockKind {
	return d.blocks[i].kind
}

// Text returns the concatenated run text of block i.
func (d *Document) Text(i int) string {
	return elementText(d.blocks[i].raw)
}

// insertAt splices raw blocks into the arena at position i, removing the
// block currently there when replace is set.
func (d *Document) insertAt(i int, replace bool, raws ...[]byte) {
	tail := d.blocks[i:]
	if replace {
		tail = d.blocks[i+1:]
	}
	fresh := make([]*block, 0, len(raws))
	for _, raw := range raws {
		fresh = append(fresh, &block{kind: kindOf(raw), raw: raw})
	}
	rebuilt := make([]*block, 0, len(d.blocks)+len(fresh))
	rebuilt = append(rebuilt, d.blocks[:i]...)
	rebuilt = append(rebuilt, fresh...)
	rebuilt = append(rebuilt, tail...)
	d.blocks = rebuilt
}

// removeAt deletes block i.
func (d *Document) removeAt(i int) {
	d.blocks = append(d.blocks[:i], d.blocks[i+1:]...)
}

// Bytes serializes the document back into a docx container. Parts keep
// their original order; new media parts follow at the end.
func (d *Document) Bytes() ([]byte, error) {
	var body bytes.Buffer
	body.Write(d.prefix)
	for _, b := range d.blocks {
		body.Write(b.raw)
	}
	body.Write(d.suffix)
	d.parts[documentPart] = body.Bytes()

	var out bytes.Buffer
	w := zip.NewWriter(&out)
	for _, name := range d.order {
		f, err := w.Create(name)
		if err != nil {
			return nil, fmt.Errorf("write part %s: %w", name, err)
		}
		if _, err = f.Write(d.parts[name]); err != nil {
			return nil, fmt.Errorf("write part %s: %w", name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close container: %w", err)
	}
	return out.Bytes(), nil
}

// Save writes the document to path atomically.
func (d *Document) Save(path string) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}
	return atomic.WriteFile(path, bytes.NewReader(data))
}

// addPart registers a new package part.
func (d *Document) addPart(name string, content []byte) {
	if _, exists := d.parts[name]; !exists {
		d.order = append(d.order, name)
	}
	d.parts[name] = content
}
