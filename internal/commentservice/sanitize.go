package commentservice

import (
	"regexp"
	"strings"
)

// Defensive XSS filtering for visitor-supplied free text. Not exhaustive;
// the rendering layer escapes output as well.
var (
	scriptTagRX    = regexp.MustCompile(`(?is)<\s*script\b[^>]*>.*?<\s*/\s*script\s*>`)
	iframeTagRX    = regexp.MustCompile(`(?is)<\s*iframe\b[^>]*>.*?<\s*/\s*iframe\s*>`)
	objectTagRX    = regexp.MustCompile(`(?is)<\s*object\b[^>]*>.*?<\s*/\s*object\s*>`)
	embedTagRX     = regexp.MustCompile(`(?i)<\s*embed\b[^>]*>`)
	jsURIRX        = regexp.MustCompile(`(?i)javascript:`)
	eventHandlerRX = regexp.MustCompile(`(?i)\bon\w+\s*=`)
)

// sanitizeText trims, clamps to maxRunes, and strips markup that could
// execute in a browser.
func sanitizeText(input string, maxRunes int) string {
	s := strings.TrimSpace(input)

	if runes := []rune(s); len(runes) > maxRunes {
		s = string(runes[:maxRunes])
	}

	s = scriptTagRX.ReplaceAllString(s, "")
	s = iframeTagRX.ReplaceAllString(s, "")
	s = objectTagRX.ReplaceAllString(s, "")
	s = embedTagRX.ReplaceAllString(s, "")
	s = jsURIRX.ReplaceAllString(s, "")
	s = eventHandlerRX.ReplaceAllString(s, "")

	return s
}
