package fieldpath

import (
	"reflect"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Naming derives the path segment of a field that has no tag name.
type Naming func(goName string) string

// CodecName keeps the Go field name, as encoding/json does.
func CodecName(goName string) string {
	return goName
}

// LowerCamel lowers the leading capital run of the Go field name:
// Content becomes content, URLPath becomes urlPath and ID becomes id.
func LowerCamel(goName string) string {
	runes := []rune(goName)

	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}
	if n == 0 {
		return goName
	}
	if n > 1 && n < len(runes) && unicode.IsLower(runes[n]) {
		n--
	}

	// cases.Caser is stateful; one per call.
	lower := cases.Lower(language.Und)
	return lower.String(string(runes[:n])) + string(runes[n:])
}

// fieldName returns the path segment of f and whether f is visible to the
// codec at all.
func fieldName(f reflect.StructField, tagKey string, naming Naming) (name string, tagged bool, visible bool) {
	tag, hasTag := f.Tag.Lookup(tagKey)
	if tag == "-" {
		return "", false, false
	}

	if hasTag {
		name, _, _ = strings.Cut(tag, ",")
	}
	if name != "" {
		return name, true, true
	}
	return naming(f.Name), false, true
}
