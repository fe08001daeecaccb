package service

import "regexp"

// Whitespace is the ECMAScript set: ASCII controls, Unicode space
// separators, line/paragraph separators and BOM.
var nonWordChars = regexp.MustCompile(`[^\w\t\n\v\f\r\p{Zs}\x{2028}\x{2029}\x{FEFF}]`)

// Sanitize strips every character that is neither a word character nor
// whitespace. Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(s string) string {
	return nonWordChars.ReplaceAllString(s, "")
}
