package posts

import "regexp"

var (
	captionShortcode = regexp.MustCompile(`(?s)\[caption[^\]]*\](.*?)\[/caption\]`)
	blockComment     = regexp.MustCompile(`(?s)<!--\s*/?wp:.*?-->`)
)

// CleanContent unwraps [caption] shortcodes, keeping their inner markup.
// When stripBlocks is set, block editor delimiters are removed too. All other
// HTML passes through unchanged.
func CleanContent(content string, stripBlocks bool) string {
	cleaned := captionShortcode.ReplaceAllString(content, "$1")
	if stripBlocks {
		cleaned = blockComment.ReplaceAllString(cleaned, "")
	}
	return cleaned
}

// truncateRunes keeps at most limit code points of value.
func truncateRunes(value string, limit int) string {
	if limit <= 0 {
		return ""
	}
	count := 0
	for idx := range value {
		if count == limit {
			return value[:idx]
		}
		count++
	}
	return value
}
