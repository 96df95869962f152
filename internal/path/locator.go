package path

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	languageOrder = []string{"zh", "ja", "en"}
	formatOrder   = []string{"excel", "word"}

	extensions = map[string]string{
		"excel": "xlsx",
		"word":  "docx",
	}
)

var errTemplateNotFound = errors.New("template file not found")

// Locator resolves template identifiers to files on disk and allocates
// temporary file paths for fill results.
type Locator struct {
	templateDir string
	tmpDir      string
	uuidFunc    func() string

	statFunc func(string) (os.FileInfo, error)
}

// NewLocator ...
func NewLocator(
	templateDir string,
	tmpDir string,
	uuidFunc func() string,
) (*Locator, error) {
	if _, err := os.Stat(templateDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("path %s is not exist", templateDir)
	}
	if _, err := os.Stat(tmpDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("path %s is not exist", tmpDir)
	}

	return &Locator{
		templateDir: templateDir,
		tmpDir:      tmpDir,
		uuidFunc:    uuidFunc,
		statFunc:    os.Stat,
	}, nil
}

// Template returns the path to the template file for the given identifier.
// The requested language is tried first, then the rest in catalog order;
// for each language the grid layout is preferred over the flow one.
func (l *Locator) Template(template, language string) (string, error) {
	if !Known(template) {
		return "", fmt.Errorf("unsupported template %q", template)
	}

	languages := languageOrder
	for _, lang := range languageOrder {
		if lang == language {
			languages = append([]string{language}, without(languageOrder, language)...)
			break
		}
	}

	for _, lang := range languages {
		name := DisplayName(template, lang)
		if name == "" {
			continue
		}
		for _, format := range formatOrder {
			candidate := filepath.Join(l.templateDir, format, lang, name+"."+extensions[format])
			if _, err := l.statFunc(candidate); err == nil {
				return candidate, nil
			}
		}
	}
	return "", errTemplateNotFound
}

// TmpFile returns a unique path in the tmp directory for name.
func (l *Locator) TmpFile(name string) string {
	return filepath.Join(l.tmpDir, l.uuidFunc()+name)
}

// Language extracts the language code from a resolved template path,
// defaulting to Chinese.
func Language(templatePath string) string {
	for _, part := range strings.Split(filepath.ToSlash(templatePath), "/") {
		for _, lang := range languageOrder {
			if part == lang {
				return lang
			}
		}
	}
	return "zh"
}

func without(list []string, drop string) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		if item != drop {
			out = append(out, item)
		}
	}
	return out
}
