package readline

import (
	"fmt"
	"strings"
)

// Color is an RGB color with optional bold formatting.
type Color struct {
	R    uint8
	G    uint8
	B    uint8
	Bold bool
}

// ToANSI converts the color to an ANSI true-color escape sequence.
func (c Color) ToANSI() string {
	var codes []string
	if c.Bold {
		codes = append(codes, "1")
	}
	codes = append(codes, fmt.Sprintf("38;2;%d;%d;%d", c.R, c.G, c.B))
	return fmt.Sprintf("\x1b[%sm", strings.Join(codes, ";"))
}

// Reset returns the ANSI reset sequence.
func Reset() string {
	return "\x1b[0m"
}

// ColorScheme holds the styles the renderer uses.
type ColorScheme struct {
	Name     string
	Prefix   Color // prompt prefix
	Input    Color // typed text
	Overlay  Color // un-typed suffix of a suggestion or menu selection
	MenuItem Color // unselected menu candidates
	Selected Color // selected menu candidate
}

// ThemeDefault is the default color scheme: green prefix, white input, red
// overlay matching the classic inline-suggestion convention.
var ThemeDefault = &ColorScheme{
	Name:     "default",
	Prefix:   Color{R: 0, G: 255, B: 0, Bold: true},
	Input:    Color{R: 255, G: 255, B: 255},
	Overlay:  Color{R: 255, G: 85, B: 85},
	MenuItem: Color{R: 200, G: 200, B: 200},
	Selected: Color{R: 0, G: 255, B: 255, Bold: true},
}

// ThemeDark is a Dracula-leaning dark scheme.
var ThemeDark = &ColorScheme{
	Name:     "dark",
	Prefix:   Color{R: 102, G: 217, B: 239, Bold: true},
	Input:    Color{R: 248, G: 248, B: 242},
	Overlay:  Color{R: 98, G: 114, B: 164},
	MenuItem: Color{R: 189, G: 147, B: 249},
	Selected: Color{R: 80, G: 250, B: 123, Bold: true},
}

// ThemeSolarizedDark is the Solarized Dark palette.
var ThemeSolarizedDark = &ColorScheme{
	Name:     "solarized-dark",
	Prefix:   Color{R: 133, G: 153, B: 0, Bold: true},
	Input:    Color{R: 147, G: 161, B: 161},
	Overlay:  Color{R: 88, G: 110, B: 117},
	MenuItem: Color{R: 131, G: 148, B: 150},
	Selected: Color{R: 38, G: 139, B: 210, Bold: true},
}
