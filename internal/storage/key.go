package storage

import (
	"path"
	"regexp"
	"strings"
	"time"
)

const defaultSegment = "default"

var timestampReg = regexp.MustCompile(`\d{8}[-_]\d{6}$`)

// uniqueName appends a timestamp unless the name already carries one.
func uniqueName(name string, now time.Time) string {
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	if timestampReg.MatchString(base) {
		return name
	}
	return base + "_" + now.Format("20060102_150405") + ext
}

// objectKey lays results out as project/version/name, with default
// segments for missing coordinates.
func objectKey(project, version, name string) string {
	if project == "" {
		project = defaultSegment
	}
	if version == "" {
		version = defaultSegment
	}
	return project + "/" + version + "/" + name
}

func hasSuffixFold(name, suffix string) bool {
	return strings.HasSuffix(strings.ToLower(name), suffix)
}
