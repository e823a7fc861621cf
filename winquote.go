package anvil

import "strings"

// commandLine joins an argument vector into a single Windows command
// line. CreateProcess takes one string rather than an argv array, so
// the marshaling must be the exact inverse of the Microsoft C runtime's
// parsing rules:
//
//   - an argument is quoted if it is empty or contains a space, tab, or
//     double quote;
//   - inside a quoted argument, a literal double quote becomes \" and
//     every backslash immediately preceding it is doubled;
//   - trailing backslashes of a quoted argument are doubled so the
//     closing quote is not escaped;
//   - backslashes anywhere else are left alone.
//
// Kept free of build tags so the quoting rules are unit-tested on every
// platform.
func commandLine(argv []string) string {
	var b strings.Builder
	for i, arg := range argv {
		if i > 0 {
			b.WriteByte(' ')
		}
		appendQuoted(&b, arg)
	}
	return b.String()
}

func appendQuoted(b *strings.Builder, arg string) {
	if arg != "" && !strings.ContainsAny(arg, " \t\"") {
		b.WriteString(arg)
		return
	}

	b.WriteByte('"')
	backslashes := 0
	for i := 0; i < len(arg); i++ {
		switch arg[i] {
		case '\\':
			backslashes++
		case '"':
			// Double the run of backslashes, then escape the quote.
			b.WriteString(strings.Repeat(`\`, backslashes*2))
			backslashes = 0
			b.WriteString(`\"`)
		default:
			b.WriteString(strings.Repeat(`\`, backslashes))
			backslashes = 0
			b.WriteByte(arg[i])
		}
	}
	// Trailing backslashes must not escape the closing quote.
	b.WriteString(strings.Repeat(`\`, backslashes*2))
	b.WriteByte('"')
}
