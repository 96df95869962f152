package parser

import (
	"errors"
	"regexp"
)

const formatRegexp = `\.(xlsx|docx)$`

var errFormatNotDefined = errors.New("file format is not defined")

// Parser ...
type Parser struct {
	formatRegexp *regexp.Regexp
}

// New ...
func New() (p *Parser, err error) {
	p = &Parser{}
	p.formatRegexp, err = regexp.Compile(formatRegexp)
	return
}

// Format returns document format of file by filename.
func (p *Parser) Format(filename string) (string, error) {
	if submatchList := p.formatRegexp.FindAllStringSubmatch(filename, -1); len(submatchList) == 1 && len(submatchList[0]) == 2 {
		return submatchList[0][1], nil
	}
	return "", errFormatNotDefined
}
