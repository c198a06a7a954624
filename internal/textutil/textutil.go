// Package textutil holds the pure string helpers used by the bot: the
// dot-removal substitution, escaping for Telegram parse modes and small
// formatting helpers.
package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// dotless maps dotted letters to their closest dotless form. No value is
// also a key, so applying the table twice is the same as applying it once.
var dotless = map[rune]rune{
	// Persian / Arabic
	'ب': 'ٮ', 'پ': 'ٮ', 'ت': 'ٮ', 'ث': 'ٮ', 'ن': 'ں', 'ی': 'ى',
	'ق': 'ٯ', 'ف': 'ڡ', 'ج': 'ح', 'چ': 'ح', 'خ': 'ح', 'ز': 'ر',
	'ژ': 'ر', 'ض': 'ص', 'ظ': 'ط', 'غ': 'ع', 'ذ': 'د', 'ش': 'س',
	'ة': 'ه', 'ي': 'ى',

	// Latin
	'i': 'ı',
	'j': 'ȷ',

	// Punctuation dots
	'.': ' ',
	':': ' ',
	'·': ' ',
}

// RemoveDots strips combining marks from s and replaces dotted letters with
// dotless look-alikes.
//
// Marks are removed before the substitution table runs: the reverse order
// would let a decomposed "ï" surface as a plain "i" on a second pass.
func RemoveDots(s string) string {
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.M)), norm.NFC)
	stripped, _, err := transform.String(stripMarks, s)
	if err != nil {
		stripped = s
	}
	return strings.Map(func(r rune) rune {
		if v, ok := dotless[r]; ok {
			return v
		}
		return r
	}, stripped)
}

// HasDots reports whether RemoveDots would change s.
func HasDots(s string) bool {
	return RemoveDots(s) != s
}

var markdownV2Escaper = strings.NewReplacer(
	`\`, `\\`,
	"_", `\_`,
	"*", `\*`,
	"[", `\[`,
	"]", `\]`,
	"(", `\(`,
	")", `\)`,
	"~", `\~`,
	"`", "\\`",
	">", `\>`,
	"#", `\#`,
	"+", `\+`,
	"-", `\-`,
	"=", `\=`,
	"|", `\|`,
	"{", `\{`,
	"}", `\}`,
	".", `\.`,
	"!", `\!`,
)

// EscapeMarkdownV2 escapes s so it renders literally inside a MarkdownV2
// message, including inside code spans.
func EscapeMarkdownV2(s string) string {
	return markdownV2Escaper.Replace(s)
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML escapes s for a message sent with the HTML parse mode.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

const cutDownLimit = 100

// CutDown returns the first line of s, at most 100 runes long, with "..."
// appended when anything was dropped.
func CutDown(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	if utf8.RuneCountInString(line) > cutDownLimit {
		line = string([]rune(line)[:cutDownLimit])
	}
	if line != s {
		line += "..."
	}
	return line
}
