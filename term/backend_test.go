package term

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.AlternateScreen || !cfg.HideCursor {
		t.Fatalf("expected alternate-screen and hide-cursor on by default, got %#v", cfg)
	}
	if cfg.MouseCapture || cfg.BracketedPaste {
		t.Fatalf("expected mouse-capture and bracketed-paste off by default, got %#v", cfg)
	}
}

func TestRecoverTerminalNoopWithoutActiveBackend(t *testing.T) {
	globalState.Store(nil)
	// Must not panic when no backend has installed state.
	RecoverTerminal()
}
