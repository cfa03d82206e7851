package canvas

import "strings"

// colorKeywords maps content keywords to the color a fresh page receives.
// Checked in order; the first matching group wins.
var colorKeywords = []struct {
	color PageColor
	words []string
}{
	{ColorRed, []string{"important", "urgent", "warning"}},
	{ColorYellow, []string{"question", "idea", "brainstorm"}},
	{ColorGreen, []string{"solution", "action", "todo"}},
	{ColorPurple, []string{"reference", "source", "citation"}},
	{ColorBlue, []string{"information", "research", "data"}},
}

// SmartColor picks a page color based on content keywords.
// Content without a recognized keyword yields ColorGray.
func SmartColor(content string) PageColor {
	lower := strings.ToLower(content)
	for _, group := range colorKeywords {
		for _, w := range group.words {
			if strings.Contains(lower, w) {
				return group.color
			}
		}
	}
	return ColorGray
}
