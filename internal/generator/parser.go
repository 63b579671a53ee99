package generator

import (
	"regexp"
	"strings"
)

// enumMarker matches numbered-list markers such as "1. " or "12.  ".
var enumMarker = regexp.MustCompile(`\d+\.\s+`)

// minTitleLength is the trimmed length below which an item is discarded.
const minTitleLength = 3

// ParseTitles turns raw model output into discrete task titles. The upstream
// format is not guaranteed, so the parser tolerates numbered lists, bare
// lines, bullet prefixes and mixed whitespace. Output that yields nothing
// parses to an empty slice, never an error.
func ParseTitles(raw string) []string {
	titles := []string{}
	for _, chunk := range enumMarker.Split(raw, -1) {
		for _, line := range strings.Split(chunk, "\n") {
			title := strings.TrimSpace(line)
			title = strings.TrimLeft(title, "-*• \t")
			title = strings.TrimSpace(title)
			if len(title) > minTitleLength {
				titles = append(titles, title)
			}
		}
	}
	return titles
}
