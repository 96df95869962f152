package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUniqueName(t *testing.T) {
	now := time.Date(2024, 5, 20, 10, 30, 0, 0, time.UTC)

	assert.Equal(t, "report_20240520_103000.xlsx", uniqueName("report.xlsx", now))
	assert.Equal(t, "report_20240101_000000.xlsx", uniqueName("report_20240101_000000.xlsx", now))
	assert.Equal(t, "report_20240101-000000.docx", uniqueName("report_20240101-000000.docx", now))
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "HEM/v2/a.xlsx", objectKey("HEM", "v2", "a.xlsx"))
	assert.Equal(t, "HEM/default/a.xlsx", objectKey("HEM", "", "a.xlsx"))
	assert.Equal(t, "default/default/a.xlsx", objectKey("", "", "a.xlsx"))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", contentType("a.XLSX"))
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", contentType("a.docx"))
	assert.Equal(t, "application/octet-stream", contentType("a.bin"))
}

func TestLocalSave(t *testing.T) {
	base := t.TempDir()
	s, err := NewLocal(base)
	assert.NoError(t, err)

	link, err := s.Save(context.Background(), "out.xlsx", []byte("data"), "HEM", "v2")
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "HEM", "v2", "out.xlsx"), link)

	content, err := os.ReadFile(link)
	assert.NoError(t, err)
	assert.Equal(t, "data", string(content))
}
