package placeholder

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Placeholder is one parsed token inside a text unit. Raw keeps the literal
// span as it appears in the template, Key the trimmed field name.
type Placeholder struct {
	Key string
	Raw string
}

// Scanner finds and resolves placeholders against a parameter set.
type Scanner struct {
	doubleBraceReg *regexp.Regexp
	singleBraceReg *regexp.Regexp
	urlReg         *regexp.Regexp
}

// New ...
func New() (s *Scanner, err error) {
	s = &Scanner{}
	if s.doubleBraceReg, err = regexp.Compile(doubleBraceRegexp); err != nil {
		return
	}
	if s.singleBraceReg, err = regexp.Compile(singleBraceRegexp); err != nil {
		return
	}
	s.urlReg, err = regexp.Compile(urlRegexp)
	return
}

// Scan returns all placeholders of text. Double-brace tokens are matched
// first and consumed; single-brace tokens are collected from the spans left
// over, so a key already covered by a double-brace match is not reported
// twice.
func (s *Scanner) Scan(text string) []Placeholder {
	if text == "" {
		return nil
	}

	var found []Placeholder
	rest := s.doubleBraceReg.ReplaceAllStringFunc(text, func(raw string) string {
		key := strings.TrimSpace(raw[2 : len(raw)-2])
		found = append(found, Placeholder{Key: key, Raw: raw})
		return ""
	})
	for _, m := range s.singleBraceReg.FindAllString(rest, -1) {
		key := strings.TrimSpace(m[1 : len(m)-1])
		found = append(found, Placeholder{Key: key, Raw: m})
	}
	return found
}

// Has reports whether text contains at least one placeholder.
func (s *Scanner) Has(text string) bool {
	return s.doubleBraceReg.MatchString(text) || s.singleBraceReg.MatchString(text)
}

// StandaloneKey returns the key when text consists of exactly one
// double-brace placeholder and nothing else. Such units are eligible for
// structural replacement.
func (s *Scanner) StandaloneKey(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	m := s.doubleBraceReg.FindString(trimmed)
	if m == "" || m != trimmed {
		return "", false
	}
	return strings.TrimSpace(m[2 : len(m)-2]), true
}

// Resolve looks key up in params, falling back to the legacy alias table.
// Absent keys are not an error: the second return is false and the caller
// leaves the placeholder untouched.
func Resolve(params map[string]interface{}, key string) (interface{}, bool) {
	if v, ok := params[key]; ok {
		return v, true
	}
	alias, ok := aliases[key]
	if !ok {
		return nil, false
	}
	group, ok := params[alias[0]].(map[string]interface{})
	if !ok {
		return nil, false
	}
	v, ok := group[alias[1]]
	return v, ok
}

// Substitute replaces every resolvable placeholder in text with its string
// value. Keys in excluded are skipped even when the literal token is still
// present, so fields designated for structural handling are never
// double-handled. The second return reports whether text changed.
func (s *Scanner) Substitute(text string, params map[string]interface{}, excluded map[string]struct{}) (string, bool) {
	if text == "" {
		return text, false
	}
	replace := func(raw, key string) string {
		if _, skip := excluded[key]; skip {
			return raw
		}
		v, ok := Resolve(params, key)
		if !ok {
			return raw
		}
		return Stringify(v)
	}
	out := s.doubleBraceReg.ReplaceAllStringFunc(text, func(raw string) string {
		return replace(raw, strings.TrimSpace(raw[2:len(raw)-2]))
	})
	out = s.singleBraceReg.ReplaceAllStringFunc(out, func(raw string) string {
		return replace(raw, strings.TrimSpace(raw[1:len(raw)-1]))
	})
	return out, out != text
}

// ImageURLs normalizes a parameter value into an ordered list of http(s)
// URLs. Values may be a single string, a list of strings, or free text with
// URLs embedded.
func (s *Scanner) ImageURLs(value interface{}) []string {
	var candidates []string
	switch v := value.(type) {
	case string:
		candidates = []string{v}
	case []string:
		candidates = v
	case []interface{}:
		for _, item := range v {
			if str, ok := item.(string); ok {
				candidates = append(candidates, str)
			}
		}
	}

	var urls []string
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if found := s.urlReg.FindAllString(c, -1); len(found) > 0 {
			urls = append(urls, found...)
			continue
		}
		urls = append(urls, strings.TrimSpace(c))
	}
	return urls
}

// SplitList splits a slash-delimited field into its trimmed non-empty items.
func SplitList(value string) []string {
	var items []string
	for _, part := range strings.Split(value, "/") {
		if p := strings.TrimSpace(part); p != "" {
			items = append(items, p)
		}
	}
	return items
}

// Stringify renders a scalar parameter value the way it should appear in a
// document.
func Stringify(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
