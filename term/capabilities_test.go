package term

import "testing"

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestDetectVendorKitty(t *testing.T) {
	caps := DetectCapabilities(envMap(map[string]string{"KITTY_WINDOW_ID": "1"}))
	if caps.Vendor != "kitty" {
		t.Fatalf("want kitty, got %q", caps.Vendor)
	}
	if caps.Color != ColorTrueColor {
		t.Fatalf("want true-colour for kitty, got %v", caps.Color)
	}
}

func TestDetectVendorFallsBackToTermProgram(t *testing.T) {
	caps := DetectCapabilities(envMap(map[string]string{"TERM_PROGRAM": "Apple_Terminal"}))
	if caps.Vendor != "apple_terminal" {
		t.Fatalf("want apple_terminal, got %q", caps.Vendor)
	}
}

func TestDetectVendorTmuxBeforeTermPrefix(t *testing.T) {
	caps := DetectCapabilities(envMap(map[string]string{"TMUX": "/tmp/tmux-0/default,1234,0", "TERM": "screen-256color"}))
	if caps.Vendor != "tmux" {
		t.Fatalf("want tmux, got %q", caps.Vendor)
	}
}

func TestDetectVendorTermPrefix(t *testing.T) {
	caps := DetectCapabilities(envMap(map[string]string{"TERM": "xterm-256color"}))
	if caps.Vendor != "xterm" {
		t.Fatalf("want xterm, got %q", caps.Vendor)
	}
	if caps.Color != ColorExtended {
		t.Fatalf("want extended colour, got %v", caps.Color)
	}
}

func TestDetectColorTrueColorFromColorterm(t *testing.T) {
	caps := DetectCapabilities(envMap(map[string]string{"TERM": "xterm", "COLORTERM": "truecolor"}))
	if caps.Color != ColorTrueColor {
		t.Fatalf("want true-colour, got %v", caps.Color)
	}
}

func TestDetectColorBasicFallback(t *testing.T) {
	caps := DetectCapabilities(envMap(map[string]string{"TERM": "vt100"}))
	if caps.Color != ColorBasic {
		t.Fatalf("want basic colour, got %v", caps.Color)
	}
}
