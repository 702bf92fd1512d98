package notifier

import (
	"regexp"
	"strings"
)

var residualTagPattern = regexp.MustCompile(`<[^>]+>`)

// htmlToPlain converts the lightweight markup the formatter emits (<br> line
// breaks, <b> emphasis) into plain text for channels that reject HTML.
func htmlToPlain(s string) string {
	s = strings.NewReplacer(
		"<br/>", "\n",
		"<br>", "\n",
		"<b>", "",
		"</b>", "",
	).Replace(s)
	return residualTagPattern.ReplaceAllString(s, "")
}
