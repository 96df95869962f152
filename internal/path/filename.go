package path

import (
	"regexp"
	"strings"
	"time"

	"github.com/geoirb/doc-templater/internal/placeholder"
)

const (
	filenameMaxLength   = 140
	templatePartMaxRune = 20
	unknownProject      = "UNKNOWN_PROJECT"
	defaultVersion      = "v1.0"
)

var (
	// CJK characters stay, everything else odd becomes an underscore.
	projectCleanReg = regexp.MustCompile(`[^\w\-.\x{4e00}-\x{9fff}\x{3040}-\x{309f}\x{30a0}-\x{30ff}]`)
	versionCleanReg = regexp.MustCompile(`[^\w\-.]`)

	dateLayouts = []string{
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006-01-02",
		"2006/01/02",
		"20060102",
		"02/01/2006",
		"01/02/2006",
	}
)

// OutputName builds the published file name:
// project_version_template_datetime.ext. Overlong names shrink the
// template part first, then drop it entirely.
func OutputName(template, language, extension string, params map[string]interface{}, now time.Time) string {
	parts := make([]string, 0, 4)

	project := firstParam(params, "project_name", "project_id")
	if project != "" {
		parts = append(parts, projectCleanReg.ReplaceAllString(project, "_"))
	} else {
		parts = append(parts, unknownProject)
	}

	version := firstParam(params, "version", "ver")
	if version != "" {
		parts = append(parts, versionCleanReg.ReplaceAllString(version, "_"))
	} else {
		parts = append(parts, defaultVersion)
	}

	parts = append(parts, projectCleanReg.ReplaceAllString(DisplayName(template, language), "_"))
	parts = append(parts, timestampPart(firstParam(params, "date", "created_date"), now))

	name := strings.Join(parts, "_")
	if len(name) > filenameMaxLength {
		if tpl := []rune(parts[2]); len(tpl) > templatePartMaxRune {
			parts[2] = string(tpl[:templatePartMaxRune])
			name = strings.Join(parts, "_")
		}
		if len(name) > filenameMaxLength {
			name = strings.Join([]string{parts[0], parts[1], parts[3]}, "_")
		}
	}
	return name + "." + extension
}

func firstParam(params map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if value, ok := params[key]; ok {
			if s := strings.TrimSpace(placeholder.Stringify(value)); s != "" {
				return s
			}
		}
	}
	return ""
}

func timestampPart(date string, now time.Time) string {
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, date); err == nil {
			return parsed.Format("20060102_150405")
		}
	}
	return now.Format("20060102_150405")
}
