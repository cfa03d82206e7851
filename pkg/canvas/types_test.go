package canvas

import "testing"

func TestParsePageColor(t *testing.T) {
	tests := []struct {
		in   string
		want PageColor
	}{
		{"red", ColorRed},
		{"blue", ColorBlue},
		{"green", ColorGreen},
		{"yellow", ColorYellow},
		{"purple", ColorPurple},
		{"gray", ColorGray},
		{"", ColorGray},
		{"magenta", ColorGray},
		{"RED", ColorGray}, // enum text is case-sensitive
	}

	for _, tt := range tests {
		if got := ParsePageColor(tt.in); got != tt.want {
			t.Errorf("ParsePageColor(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseConnectionType(t *testing.T) {
	tests := []struct {
		in   string
		want ConnectionType
	}{
		{"explores", ConnExplores},
		{"leads-to", ConnLeadsTo},
		{"relates", ConnRelates},
		{"contradicts", ConnContradicts},
		{"supports", ConnSupports},
		{"questions", ConnQuestions},
		{"", ConnRelates},
		{"blocks", ConnRelates},
	}

	for _, tt := range tests {
		if got := ParseConnectionType(tt.in); got != tt.want {
			t.Errorf("ParseConnectionType(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseTheme(t *testing.T) {
	if got := ParseTheme("dark"); got != ThemeDark {
		t.Errorf("ParseTheme(dark) = %s", got)
	}
	if got := ParseTheme("solarized"); got != ThemeLight {
		t.Errorf("ParseTheme(solarized) = %s, want light", got)
	}
}

func TestDisplayTitle(t *testing.T) {
	p := Page{ID: "page-1"}
	if p.DisplayTitle() != "page-1" {
		t.Errorf("DisplayTitle = %q, want id", p.DisplayTitle())
	}
	p.Title = "Reading List"
	if p.DisplayTitle() != "Reading List" {
		t.Errorf("DisplayTitle = %q", p.DisplayTitle())
	}
}

func TestSmartColor(t *testing.T) {
	tests := []struct {
		content string
		want    PageColor
	}{
		{"this is IMPORTANT", ColorRed},
		{"an idea for later", ColorYellow},
		{"todo: buy milk", ColorGreen},
		{"see reference [1]", ColorPurple},
		{"research notes", ColorBlue},
		{"plain text", ColorGray},
		{"", ColorGray},
	}

	for _, tt := range tests {
		if got := SmartColor(tt.content); got != tt.want {
			t.Errorf("SmartColor(%q) = %s, want %s", tt.content, got, tt.want)
		}
	}
}
