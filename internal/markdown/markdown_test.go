package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderBlocks(t *testing.T) {
	blocks := Render("# Title\n\n## Section\nplain text\n- first\n* second\n1. one\n2. two")

	assert.Len(t, blocks, 8)
	assert.Equal(t, KindHeading, blocks[0].Kind)
	assert.Equal(t, 1, blocks[0].Level)
	assert.Equal(t, "Title", blocks[0].Text())

	assert.Equal(t, KindParagraph, blocks[1].Kind)
	assert.Empty(t, blocks[1].Spans)

	assert.Equal(t, KindHeading, blocks[2].Kind)
	assert.Equal(t, 2, blocks[2].Level)

	assert.Equal(t, KindParagraph, blocks[3].Kind)
	assert.Equal(t, KindBullet, blocks[4].Kind)
	assert.Equal(t, "first", blocks[4].Text())
	assert.Equal(t, KindBullet, blocks[5].Kind)
	assert.Equal(t, KindNumbered, blocks[6].Kind)
	assert.Equal(t, "one", blocks[6].Text())
	assert.Equal(t, KindNumbered, blocks[7].Kind)
}

func TestRenderInlineBold(t *testing.T) {
	blocks := Render("**Bold** and plain")
	assert.Len(t, blocks, 1)
	assert.Equal(t, []Span{
		{Text: "Bold", Bold: true},
		{Text: " and plain"},
	}, blocks[0].Spans)
}

func TestInlineUnmatchedBoldIsLiteral(t *testing.T) {
	spans := Inline("open ** remains literal")
	assert.Equal(t, []Span{{Text: "open ** remains literal"}}, spans)

	spans = Inline("**a** mid ** tail")
	assert.Equal(t, []Span{
		{Text: "a", Bold: true},
		{Text: " mid ** tail"},
	}, spans)
}

func TestParseTableRoundTrip(t *testing.T) {
	src := "| Name | Value |\n|---|---|\n|  a  | 1 |\n| b |2|\n| c | 3 |"
	table := ParseTable(src)

	assert.Equal(t, []string{"Name", "Value"}, table.Headers)
	assert.Equal(t, [][]string{
		{"a", "1"},
		{"b", "2"},
		{"c", "3"},
	}, table.Rows)
}

func TestParseTableRaggedRows(t *testing.T) {
	table := ParseTable("| A | B | C |\n|---|---|---|\n| 1 |\n| 1 | 2 | 3 | 4 |")
	assert.Equal(t, []string{"A", "B", "C"}, table.Headers)
	assert.Equal(t, [][]string{
		{"1", "", ""},
		{"1", "2", "3"},
	}, table.Rows)
}

func TestParseTableMalformed(t *testing.T) {
	assert.Empty(t, ParseTable("just a line").Headers)
	assert.Empty(t, ParseTable("| only header |").Headers)
	assert.Empty(t, ParseTable("no pipes\nhere either\nat all").Headers)
}
