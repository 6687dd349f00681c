package utils

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"
)

const maxFileNameLength = 255

var (
	controlChars  = regexp.MustCompile(`[\x00-\x1f\x7f]`)
	unsafeNameRun = regexp.MustCompile(`[<>:"/\\|?*]+`)
)

// SanitizeString removes control characters and surrounding whitespace
func SanitizeString(s string) string {
	return strings.TrimSpace(controlChars.ReplaceAllString(s, ""))
}

// SanitizeFileName reduces an uploaded file name to a safe display name.
// Directory components are dropped and reserved characters are replaced
// with an underscore. Returns an empty string when nothing usable remains.
func SanitizeFileName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	if name == "." || name == "/" || name == ".." {
		return ""
	}

	name = SanitizeString(name)
	name = unsafeNameRun.ReplaceAllString(name, "_")
	name = strings.Trim(name, ". ")

	for len(name) > maxFileNameLength {
		_, size := utf8.DecodeLastRuneInString(name)
		name = name[:len(name)-size]
	}
	return name
}

// BaseName returns name without its extension
func BaseName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
