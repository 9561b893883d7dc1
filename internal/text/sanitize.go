// Package text provides input sanitization for user-supplied TTS text.
package text

import "strings"

// Clean strips control characters that break downstream synthesis while
// keeping line breaks and tabs. CRLF and bare CR are normalized to LF and
// surrounding whitespace is trimmed. The result may be empty; callers decide
// whether that is acceptable.
func Clean(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			b.WriteRune(r)
		case r < 0x20 || r == 0x7F:
			// drop
		default:
			b.WriteRune(r)
		}
	}

	cleaned := strings.ReplaceAll(b.String(), "\r\n", "\n")
	cleaned = strings.ReplaceAll(cleaned, "\r", "\n")

	return strings.TrimSpace(cleaned)
}
