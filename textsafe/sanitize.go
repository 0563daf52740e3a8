// Package textsafe holds the string transforms applied to untrusted text
// before it is interpolated into HTML, a regular expression or a JSON-LD
// script block.
package textsafe

import (
	"regexp"
	"strings"
)

// Ampersand comes first so entities produced by later pairs are not escaped again.
var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

var jsonLDReplacer = strings.NewReplacer("</", `<\/`)

// SanitizeHTML escapes & < > " and ' to their entities. It is not idempotent:
// sanitizing already escaped text escapes the ampersands a second time.
func SanitizeHTML(input string) string {
	return htmlReplacer.Replace(input)
}

// EscapeRegex backslash-escapes . * + ? ^ $ { } ( ) | [ ] and \ so the result
// matches input literally when compiled as a pattern.
func EscapeRegex(input string) string {
	return regexp.QuoteMeta(input)
}

// SanitizeForJSONLD rewrites every "</" as "<\/" so the string cannot close
// the script element it is embedded in.
func SanitizeForJSONLD(input string) string {
	return jsonLDReplacer.Replace(input)
}
