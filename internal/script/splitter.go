package script

import (
	"iter"
	"strings"
)

// Batches splits a raw script into executable batches delimited by
// separator lines. Lines are split on CR and LF with empty lines removed,
// so every emitted batch uses "\n" terminators regardless of the input
// convention. Separator lines are consumed, never emitted; a script that
// is empty or separator-only yields no batches at all.
func Batches(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		var buf strings.Builder

		lines := strings.FieldsFunc(text, func(r rune) bool {
			return r == '\r' || r == '\n'
		})

		for _, line := range lines {
			if IsSeparator(line) {
				if buf.Len() > 0 {
					if !yield(buf.String()) {
						return
					}
					buf.Reset()
				}
				continue
			}
			buf.WriteString(line)
			buf.WriteByte('\n')
		}

		if buf.Len() > 0 {
			yield(buf.String())
		}
	}
}

// IsSeparator reports whether a line is a batch separator: optional
// whitespace, the token "GO" in any case, optional semicolons, and at most
// a trailing line or block comment. Anything else on the line disqualifies
// it, so "GOTO label" is never a separator.
func IsSeparator(line string) bool {
	s := strings.TrimSpace(line)
	if len(s) < 2 || !strings.EqualFold(s[:2], "go") {
		return false
	}

	rest := strings.TrimLeft(s[2:], "; \t")
	if rest == "" {
		return true
	}
	return strings.HasPrefix(rest, "--") || strings.HasPrefix(rest, "/*")
}
