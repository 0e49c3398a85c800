package Compare

import "strings"

// CleanID canonicalizes an employee identifier so the same employee can
// be joined across the roster and both biometric exports. The exports
// disagree on casing, punctuation and numeric formatting (integer ids
// arrive as "1234.0" after spreadsheet coercion), so everything except
// ASCII letters and digits is thrown away.
func CleanID(v string) string {
	s := strings.ToUpper(strings.TrimSpace(v))
	s = strings.TrimSuffix(s, ".0")
	var b strings.Builder
	for _, r := range s {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsMissing reports whether a cell holds one of the "no value" sentinels
// the punch-clock exports use: all whitespace, or a lone dash.
func IsMissing(v string) bool {
	return strings.TrimSpace(v) == "" || v == "-"
}
