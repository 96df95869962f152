package docx

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
)

// splitElements cuts an XML fragment into its top-level elements. Text
// between elements is dropped; OOXML body content is machine generated and
// carries none.
func splitElements(data []byte) [][]byte {
	var elements [][]byte
	i := 0
	for i < len(data) {
		j := bytes.IndexByte(data[i:], '<')
		if j < 0 {
			break
		}
		start := i + j
		end := elementEnd(data, start)
		if end <= start {
			break
		}
		elements = append(elements, data[start:end])
		i = end
	}
	return elements
}

// elementEnd returns the index just past the element starting at start,
// tracking nesting depth and quoted attribute values.
func elementEnd(data []byte, start int) int {
	depth := 0
	k := start
	for k < len(data) {
		if data[k] != '<' {
			k++
			continue
		}
		closing := k+1 < len(data) && data[k+1] == '/'
		m := k + 1
		var quote byte
		for m < len(data) {
			c := data[m]
			if quote != 0 {
				if c == quote {
					quote = 0
				}
				m++
				continue
			}
			if c == '"' || c == '\'' {
				quote = c
				m++
				continue
			}
			if c == '>' {
				break
			}
			m++
		}
		if m >= len(data) {
			return len(data)
		}
		selfClosing := data[m-1] == '/'
		switch {
		case closing:
			depth--
		case selfClosing:
		default:
			depth++
		}
		k = m + 1
		if depth == 0 {
			return k
		}
	}
	return k
}

// elementName extracts the tag name of the element at the start of raw.
func elementName(raw []byte) string {
	if len(raw) < 2 || raw[0] != '<' {
		return ""
	}
	end := 1
	for end < len(raw) {
		c := raw[end]
		if c == ' ' || c == '>' || c == '/' || c == '\t' || c == '\r' || c == '\n' {
			break
		}
		end++
	}
	return string(raw[1:end])
}

var (
	textRunReg = regexp.MustCompile(`(?s)<w:t(?:\s[^>]*)?>(.*?)</w:t>`)
	charRefReg = regexp.MustCompile(`&#x?[0-9a-fA-F]+;`)
)

// elementText concatenates the visible run text inside raw.
func elementText(raw []byte) string {
	var sb strings.Builder
	for _, m := range textRunReg.FindAllSubmatch(raw, -1) {
		sb.WriteString(unescapeXML(string(m[1])))
	}
	return sb.String()
}

// childSpans locates every top-level occurrence of the named element inside
// raw (excluding raw itself), returning [start, end) byte spans. An element
// is never nested inside another element of the same name in OOXML body
// content, so a flat scan is enough.
func childSpans(raw []byte, name string) [][2]int {
	var spans [][2]int
	open := []byte("<" + name)
	i := 0
	for {
		j := bytes.Index(raw[i:], open)
		if j < 0 {
			return spans
		}
		start := i + j
		// Reject prefix matches such as <w:pPr when scanning for <w:p.
		after := start + len(open)
		if after < len(raw) {
			c := raw[after]
			if c != ' ' && c != '>' && c != '/' && c != '\t' {
				i = after
				continue
			}
		}
		if start == 0 {
			i = after
			continue
		}
		end := elementEnd(raw, start)
		spans = append(spans, [2]int{start, end})
		i = end
	}
}

func escapeXML(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			sb.WriteString("&amp;")
		case '<':
			sb.WriteString("&lt;")
		case '>':
			sb.WriteString("&gt;")
		case '"':
			sb.WriteString("&quot;")
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func unescapeXML(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	s = charRefReg.ReplaceAllStringFunc(s, func(ref string) string {
		body := ref[2 : len(ref)-1]
		base := 10
		if body[0] == 'x' || body[0] == 'X' {
			body = body[1:]
			base = 16
		}
		n, err := strconv.ParseInt(body, base, 32)
		if err != nil {
			return ref
		}
		return string(rune(n))
	})
	r := strings.NewReplacer(
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&apos;", "'",
		"&amp;", "&",
	)
	return r.Replace(s)
}
