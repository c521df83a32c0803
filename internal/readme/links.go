// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package readme

import "regexp"

// urlPattern matches http(s):// followed by a run of non-whitespace. The
// negated class spells out every character treated as whitespace by board
// text (Go's \s alone misses vertical tab and the Unicode spaces).
var urlPattern = regexp.MustCompile(`https?://[^\s\v\x{00a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}]+`)

// ExtractLinks returns every URL found in text, left to right. It returns an
// empty (non-nil) slice when there are none.
func ExtractLinks(text string) []string {
	links := urlPattern.FindAllString(text, -1)
	if links == nil {
		return []string{}
	}
	return links
}
