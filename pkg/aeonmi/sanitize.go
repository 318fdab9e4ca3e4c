package aeonmi

import "strings"

// Sanitize maps an identifier onto [a-z0-9_]: every rune outside [a-zA-Z0-9_] becomes '_'
// and the result is lowercased. Distinct inputs can collide ("Node-1" and "node_1").
func Sanitize(s string) string {
	return replaceInvalid(s, true)
}

// sanitizeType keeps the case of a node type so built-in types render unchanged.
func sanitizeType(t string) string {
	return replaceInvalid(t, false)
}

func replaceInvalid(s string, lower bool) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			if lower {
				r += 'a' - 'A'
			}

			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	return b.String()
}
