package cleaner

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/bulk-renamer/go/internal/types"
)

// Regex patterns
var (
	specialCharRegex = regexp.MustCompile(`[^\p{L}\p{N}_\s.-]+`)
	underscoreRegex  = regexp.MustCompile(`_+`)
	dotRunRegex      = regexp.MustCompile(`\.+`)
)

var titleCaser = cases.Title(language.Und)

// Options selects which cleanup transforms to apply.
type Options struct {
	RemoveSpecialChars bool
	ReplaceSpaces      bool
	ConvertCase        bool
	CaseType           types.CaseType
	RemoveAccents      bool
}

// FromConfig extracts the cleanup options from a naming configuration.
func FromConfig(cfg types.NamingConfig) Options {
	return Options{
		RemoveSpecialChars: cfg.RemoveSpecialChars,
		ReplaceSpaces:      cfg.ReplaceSpaces,
		ConvertCase:        cfg.ConvertCase,
		CaseType:           cfg.CaseType,
		RemoveAccents:      cfg.RemoveAccents,
	}
}

// Clean applies the selected transforms to a filename. The extension (text
// after the last dot) is split off first and reattached untouched. Transform
// order is fixed: accent strip, special-char strip, space replace, case
// convert, trailing cleanup. Empty input is returned unchanged.
func Clean(filename string, opts Options) string {
	if filename == "" {
		return filename
	}

	name, ext, hasExt := splitLastDot(filename)

	if opts.RemoveAccents {
		name = stripAccents(name)
	}

	if opts.RemoveSpecialChars {
		name = specialCharRegex.ReplaceAllString(name, "")
	}

	if opts.ReplaceSpaces {
		name = strings.ReplaceAll(name, " ", "_")
		name = underscoreRegex.ReplaceAllString(name, "_")
		name = strings.Trim(name, "_")
	}

	if opts.ConvertCase {
		switch opts.CaseType {
		case types.CaseLower:
			name = strings.ToLower(name)
		case types.CaseUpper:
			name = strings.ToUpper(name)
		case types.CaseTitle:
			name = titleCaser.String(name)
		}
	}

	name = dotRunRegex.ReplaceAllString(name, ".")
	name = strings.Trim(name, ". ")

	if hasExt {
		return name + "." + ext
	}
	return name
}

// splitLastDot separates base from extension on the last dot. A name with no
// dot has no extension.
func splitLastDot(filename string) (name, ext string, hasExt bool) {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return filename, "", false
	}
	return filename[:idx], filename[idx+1:], true
}

// stripAccents decomposes to NFD and drops combining marks.
func stripAccents(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
