package term

import (
	"os"
	"strings"
)

// ColorLevel is how many colours the detected terminal can render.
type ColorLevel int

const (
	ColorBasic ColorLevel = iota
	ColorExtended
	ColorTrueColor
)

// Capabilities is a snapshot of what the surrounding terminal supports,
// derived entirely from environment variables (there is no query/response
// probe -- a probe would require blocking reads with timeouts that this
// core's synchronous input parser does not perform).
type Capabilities struct {
	Vendor string // short identifier such as "kitty", "iterm", "wezterm", ""
	Color  ColorLevel
}

var vendorModernTerms = map[string]bool{
	"kitty": true, "iterm": true, "wezterm": true, "alacritty": true,
	"konsole": true, "vte": true, "gnome": true, "windows-terminal": true,
	"conemu": true,
}

// DetectCapabilities reads the documented environment variables and
// composes a capability record. Decision order for vendor identification:
// explicit vendor variables, then TERM_PROGRAM, then TMUX/STY, then TERM
// prefix match, then platform default.
func DetectCapabilities(getenv func(string) string) Capabilities {
	if getenv == nil {
		getenv = os.Getenv
	}

	vendor := detectVendor(getenv)
	return Capabilities{
		Vendor: vendor,
		Color:  detectColorLevel(getenv, vendor),
	}
}

func detectVendor(getenv func(string) string) string {
	switch {
	case getenv("KITTY_WINDOW_ID") != "":
		return "kitty"
	case getenv("ITERM_SESSION_ID") != "" || getenv("ITERM_PROFILE") != "":
		return "iterm"
	case getenv("WEZTERM_PANE") != "" || getenv("WEZTERM_UNIX_SOCKET") != "":
		return "wezterm"
	case getenv("ALACRITTY_LOG") != "" || getenv("ALACRITTY_SOCKET") != "":
		return "alacritty"
	case getenv("KONSOLE_VERSION") != "":
		return "konsole"
	case getenv("VTE_VERSION") != "":
		return "vte"
	case getenv("GNOME_TERMINAL_SCREEN") != "":
		return "gnome"
	case getenv("WT_SESSION") != "" || getenv("WT_PROFILE_ID") != "":
		return "windows-terminal"
	case getenv("ConEmuPID") != "" || getenv("ConEmuANSI") != "":
		return "conemu"
	}

	if tp := getenv("TERM_PROGRAM"); tp != "" {
		return strings.ToLower(tp)
	}

	if getenv("TMUX") != "" {
		return "tmux"
	}
	if getenv("STY") != "" {
		return "screen"
	}

	t := strings.ToLower(getenv("TERM"))
	switch {
	case strings.HasPrefix(t, "xterm"):
		return "xterm"
	case strings.HasPrefix(t, "screen"):
		return "screen"
	case strings.HasPrefix(t, "tmux"):
		return "tmux"
	case strings.HasPrefix(t, "rxvt"):
		return "rxvt"
	case strings.HasPrefix(t, "linux"):
		return "linux"
	}

	if getenv("MSYSTEM") != "" {
		return "mintty"
	}

	return platformDefaultVendor()
}

func detectColorLevel(getenv func(string) string, vendor string) ColorLevel {
	ct := strings.ToLower(getenv("COLORTERM"))
	if ct == "truecolor" || ct == "24bit" {
		return ColorTrueColor
	}
	if vendorModernTerms[vendor] {
		return ColorTrueColor
	}

	t := strings.ToLower(getenv("TERM"))
	switch {
	case strings.Contains(t, "truecolor"), strings.Contains(t, "24bit"), strings.Contains(t, "direct"):
		return ColorTrueColor
	case strings.Contains(t, "256color"):
		return ColorExtended
	}

	if isKnownModernTerm(vendor) {
		return ColorExtended
	}

	return ColorBasic
}

func isKnownModernTerm(vendor string) bool {
	switch vendor {
	case "xterm", "tmux", "screen", "rxvt":
		return true
	}
	return vendorModernTerms[vendor]
}
