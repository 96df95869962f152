package markdown

import (
	"regexp"
	"strings"
)

// BlockKind tags a rendered block.
type BlockKind int

const (
	KindParagraph BlockKind = iota
	KindHeading
	KindBullet
	KindNumbered
)

// Span is one inline run of a block.
type Span struct {
	Text string
	Bold bool
}

// Block is one rendered unit of the restricted markdown subset.
type Block struct {
	Kind  BlockKind
	Level int // heading level, 1 or 2
	Spans []Span
}

// Text concatenates the block's spans.
func (b Block) Text() string {
	var sb strings.Builder
	for _, s := range b.Spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

var (
	bulletReg   = regexp.MustCompile(`^[-*]\s+`)
	numberedReg = regexp.MustCompile(`^\d+\.\s+`)
	boldReg     = regexp.MustCompile(`\*\*(.+?)\*\*`)
)

// Render turns markdown text into an ordered block sequence. The subset is
// intentionally small: 1-2 level headings, bullet and numbered items, bold
// spans. Anything else, links and nested emphasis included, keeps its
// markers as literal text.
func Render(text string) []Block {
	var blocks []Block
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimRight(raw, " \t\r")
		switch {
		case line == "":
			blocks = append(blocks, Block{Kind: KindParagraph})
		case strings.HasPrefix(line, "#"):
			level := len(line) - len(strings.TrimLeft(line, "#"))
			if level > 2 {
				level = 2
			}
			content := strings.TrimSpace(strings.TrimLeft(line, "#"))
			blocks = append(blocks, Block{Kind: KindHeading, Level: level, Spans: Inline(content)})
		case bulletReg.MatchString(line):
			blocks = append(blocks, Block{Kind: KindBullet, Spans: Inline(bulletReg.ReplaceAllString(line, ""))})
		case numberedReg.MatchString(line):
			blocks = append(blocks, Block{Kind: KindNumbered, Spans: Inline(numberedReg.ReplaceAllString(line, ""))})
		default:
			blocks = append(blocks, Block{Kind: KindParagraph, Spans: Inline(line)})
		}
	}
	return blocks
}

// Inline splits text into alternating plain and bold spans. An unmatched
// `**` is literal text, not an error.
func Inline(text string) []Span {
	var spans []Span
	pos := 0
	for _, m := range boldReg.FindAllStringSubmatchIndex(text, -1) {
		if m[0] > pos {
			spans = append(spans, Span{Text: text[pos:m[0]]})
		}
		spans = append(spans, Span{Text: text[m[2]:m[3]], Bold: true})
		pos = m[1]
	}
	if pos < len(text) {
		spans = append(spans, Span{Text: text[pos:]})
	}
	return spans
}
