package common

import (
	"strings"
	"unicode"
)

// Words splits an identifier into lower-case words on underscores, dashes,
// spaces and camelCase boundaries. "timestamp_us" -> [timestamp us],
// "loopCount" -> [loop count], "IMUTemp" -> [imu temp].
func Words(s string) []string {
	return strings.FieldsFunc(ToSnakeCase(s), func(r rune) bool {
		return r == '_' || r == '-' || unicode.IsSpace(r)
	})
}

func ToPascalCase(s string) string {
	var result strings.Builder
	for _, word := range Words(s) {
		result.WriteString(strings.ToUpper(word[:1]))
		result.WriteString(word[1:])
	}
	return result.String()
}

func ToCamelCase(s string) string {
	pascal := ToPascalCase(s)
	if len(pascal) == 0 {
		return ""
	}
	return strings.ToLower(pascal[:1]) + pascal[1:]
}

func ToSnakeCase(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		isUpper := r >= 'A' && r <= 'Z'

		if i > 0 && isUpper {
			// "someWord" -> "some_word"
			prevIsLower := (runes[i-1] >= 'a' && runes[i-1] <= 'z') || (runes[i-1] >= '0' && runes[i-1] <= '9')
			// "XMLParser" -> "xml_parser", not "x_m_l_parser"
			prevIsUpper := runes[i-1] >= 'A' && runes[i-1] <= 'Z'
			nextIsLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'

			if prevIsLower || (prevIsUpper && nextIsLower) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}

// ToMacroName turns a file path into an include-guard style macro name using
// its base name: "copter/src/shmdef.h" -> "SHMDEF_H".
func ToMacroName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		path = path[i+1:]
	}
	var b strings.Builder
	for _, r := range path {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - ('a' - 'A'))
		case (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := b.String()
	if out != "" && out[0] >= '0' && out[0] <= '9' {
		out = "_" + out
	}
	return out
}

// Indent prefixes every non-empty line of s with the given number of spaces.
func Indent(spaces int, s string) string {
	prefix := strings.Repeat(" ", spaces)
	parts := strings.Split(s, "\n")
	for i, p := range parts {
		if p != "" {
			parts[i] = prefix + p
		}
	}
	return strings.Join(parts, "\n")
}

// goInitialisms stay upper case in exported Go names.
var goInitialisms = map[string]bool{
	"esc": true,
	"id":  true,
	"imu": true,
	"pid": true,
	"rc":  true,
	"gps": true,
	"cpu": true,
}

// ToGoName converts an identifier to an exported Go identifier:
// "pid_gains" -> "PIDGains", "timestampUs" -> "TimestampUs". Names with no
// letters or digits become "X".
func ToGoName(name string) string {
	var b strings.Builder
	for _, w := range Words(name) {
		if goInitialisms[w] {
			b.WriteString(strings.ToUpper(w))
			continue
		}
		b.WriteString(strings.ToUpper(w[:1]))
		b.WriteString(w[1:])
	}
	out := b.String()
	if out == "" || out[0] == '_' {
		return "X" + out
	}
	return out
}
