package markdown

import "strings"

// Table is a parsed pipe-delimited markdown table. Every row carries exactly
// len(Headers) cells.
type Table struct {
	Headers []string
	Rows    [][]string
}

// ParseTable parses a markdown table into its header and data rows. A text
// without at least a header line and a separator line, or whose first two
// lines carry no pipe character, yields empty headers: there is no table to
// render and that is not an error. Data rows are padded or truncated to the
// header width, never rejected.
func ParseTable(text string) Table {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if t := strings.TrimSpace(l); t != "" {
			lines = append(lines, t)
		}
	}
	if len(lines) < 2 {
		return Table{}
	}
	if !strings.Contains(lines[0], "|") || !strings.Contains(lines[1], "|") {
		return Table{}
	}

	headers := splitRow(lines[0])
	var rows [][]string
	for _, line := range lines[2:] {
		if !strings.Contains(line, "|") {
			continue
		}
		cells := splitRow(line)
		for len(cells) < len(headers) {
			cells = append(cells, "")
		}
		rows = append(rows, cells[:len(headers)])
	}
	return Table{Headers: headers, Rows: rows}
}

func splitRow(line string) []string {
	line = strings.Trim(line, "|")
	parts := strings.Split(line, "|")
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}
