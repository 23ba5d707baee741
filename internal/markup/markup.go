// Package markup renders nested SVG/HTML tags as plain strings.
//
// Nothing is escaped. Callers pass well-formed fragments.
package markup

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ClassName is the attribute key emitted as "class".
const ClassName = "className"

// Attr is a single attribute. Keys are written in camelCase and emitted in
// kebab-case unless Verbatim is set.
type Attr struct {
	Key      string
	Value    string
	Verbatim bool
}

// A builds an attribute, formatting numbers without trailing zeros.
func A(key string, value any) Attr {
	return Attr{Key: key, Value: FormatValue(value)}
}

// Raw builds an attribute whose key is emitted unchanged, for case-sensitive
// SVG attributes such as viewBox.
func Raw(key string, value any) Attr {
	return Attr{Key: key, Value: FormatValue(value), Verbatim: true}
}

// Render renders tag with a literal string body.
func Render(tag, children string, attrs ...Attr) string {
	var sb strings.Builder
	sb.WriteString("<")
	sb.WriteString(tag)
	sb.WriteString(" ")
	for i, a := range attrs {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(a.name())
		sb.WriteString("='")
		sb.WriteString(a.Value)
		sb.WriteString("'")
	}
	sb.WriteString(">")
	sb.WriteString(children)
	sb.WriteString("</")
	sb.WriteString(tag)
	sb.WriteString(">")
	return sb.String()
}

// RenderAll renders tag with children joined by newlines.
func RenderAll(tag string, children []string, attrs ...Attr) string {
	return Render(tag, strings.Join(children, "\n"), attrs...)
}

func (a Attr) name() string {
	switch {
	case a.Verbatim:
		return a.Key
	case a.Key == ClassName:
		return "class"
	default:
		return KebabCase(a.Key)
	}
}

// KebabCase inserts a hyphen before every upper-case letter except a leading
// one and lower-cases the result: "dataTestid" -> "data-testid".
func KebabCase(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 4)
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			sb.WriteByte('-')
		}
		sb.WriteRune(unicode.ToLower(r))
	}
	return sb.String()
}

// FormatValue renders an attribute value. Floats use the shortest exact form.
func FormatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
