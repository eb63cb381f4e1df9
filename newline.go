package quillhtml

import (
	"regexp"
	"strings"
)

// blockRun matches a paragraph boundary: two or more newlines and any
// spaces indenting the next line.
var blockRun = regexp.MustCompile(`\n{2,} *`)

// segmentNewlines turns every paragraph boundary into a block close/open
// pair and the remaining single newlines into line breaks. It reports how
// many paragraph boundaries were replaced.
func segmentNewlines(text string, opts *Options) (string, int) {
	if !strings.Contains(text, "\n") {
		return text, 0
	}
	locs := blockRun.FindAllStringIndex(text, -1)
	if len(locs) > 0 {
		text = blockRun.ReplaceAllLiteralString(text, closeTag(opts.Block)+"<"+opts.Block+">")
	}
	text = strings.ReplaceAll(text, "\n", lineBreakTag(opts.Newline)+"\n")
	return text, len(locs)
}

// trimTrailingBreaks strips line-break markup and newlines from the end of s.
func trimTrailingBreaks(s, newline string) string {
	br := lineBreakTag(newline)
	for {
		switch {
		case strings.HasSuffix(s, "\n"):
			s = s[:len(s)-1]
		case strings.HasSuffix(s, br):
			s = s[:len(s)-len(br)]
		default:
			return s
		}
	}
}
