package path

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLocator(t *testing.T, files ...string) *Locator {
	t.Helper()
	base := t.TempDir()
	for _, f := range files {
		full := filepath.Join(base, f)
		assert.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		assert.NoError(t, os.WriteFile(full, []byte("x"), 0o644))
	}
	l, err := NewLocator(base, t.TempDir(), func() string { return "fixed-uuid-" })
	assert.NoError(t, err)
	return l
}

func TestTemplatePrefersRequestedLanguage(t *testing.T) {
	l := newTestLocator(t,
		"excel/zh/标签仕样书-仕样确认书.xlsx",
		"excel/ja/ラベル仕様書.xlsx",
	)

	p, err := l.Template(LabelingSpecification, "ja")
	assert.NoError(t, err)
	assert.Contains(t, p, filepath.Join("excel", "ja"))
}

func TestTemplateFallsBackThroughLanguages(t *testing.T) {
	l := newTestLocator(t, "word/en/Basic Specification.docx")

	p, err := l.Template(BasicSpecification, "zh")
	assert.NoError(t, err)
	assert.Contains(t, p, filepath.Join("word", "en"))
}

func TestTemplatePrefersGridOverFlow(t *testing.T) {
	l := newTestLocator(t,
		"excel/zh/基本规格书.xlsx",
		"word/zh/基本规格书.docx",
	)

	p, err := l.Template(BasicSpecification, "zh")
	assert.NoError(t, err)
	assert.Contains(t, p, ".xlsx")
}

func TestTemplateUnknownAndMissing(t *testing.T) {
	l := newTestLocator(t)

	_, err := l.Template("NOT_A_TEMPLATE", "zh")
	assert.Error(t, err)

	_, err = l.Template(ProjectPlan, "zh")
	assert.ErrorIs(t, err, errTemplateNotFound)
}

func TestLanguageFromPath(t *testing.T) {
	assert.Equal(t, "ja", Language("/template/excel/ja/ラベル仕様書.xlsx"))
	assert.Equal(t, "zh", Language("/template/plain.xlsx"))
}

func TestOutputName(t *testing.T) {
	now := time.Date(2024, 5, 20, 10, 30, 0, 0, time.UTC)
	params := map[string]interface{}{
		"project_name": "HEM 7600",
		"version":      "v2.1",
		"date":         "2024-05-01",
	}

	name := OutputName(BasicSpecification, "zh", "docx", params, now)
	assert.Equal(t, "HEM_7600_v2.1_基本规格书_20240501_000000.docx", name)
}

func TestOutputNameDefaults(t *testing.T) {
	now := time.Date(2024, 5, 20, 10, 30, 0, 0, time.UTC)

	name := OutputName(DHFIndex, "en", "xlsx", map[string]interface{}{}, now)
	assert.Equal(t, "UNKNOWN_PROJECT_v1.0_Document_and_Drawing_Index_20240520_103000.xlsx", name)
}

func TestTmpFile(t *testing.T) {
	l := newTestLocator(t)
	assert.Equal(t, "fixed-uuid-result.xlsx", filepath.Base(l.TmpFile("result.xlsx")))
}
