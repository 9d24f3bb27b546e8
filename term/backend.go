package term

import (
	"os"
	"sync/atomic"

	zithril "github.com/hotschmoe/zithril-sub000"
	"github.com/rs/zerolog"
	xterm "golang.org/x/term"
)

// Config holds the backend's feature toggles. Zero-value Config has every
// bool false; callers almost always want DefaultConfig.
type Config struct {
	AlternateScreen bool
	HideCursor      bool
	MouseCapture    bool
	BracketedPaste  bool
}

// DefaultConfig matches the documented defaults: alternate screen and
// hidden cursor on, mouse capture and bracketed paste off.
func DefaultConfig() Config {
	return Config{AlternateScreen: true, HideCursor: true}
}

var logger = zerolog.New(os.Stderr).Level(zerolog.WarnLevel).With().Timestamp().Logger()

// panicState is the minimum information needed to restore a terminal from
// a panic handler: plain data, no pointer into a possibly-corrupted
// Backend. Stored in the package-level S via an atomic.Pointer so the
// panic path never takes a lock.
type panicState struct {
	fd         int
	saved      *xterm.State
	cfg        Config
	sgrMouse   bool
}

var globalState atomic.Pointer[panicState]

// Backend is a scoped resource: while alive, the terminal is in raw mode
// with the configured feature set engaged; on Close it restores the exact
// prior terminal state. One process may hold at most one live backend.
type Backend struct {
	in  *os.File
	out *os.File
	w   *Writer

	saved *xterm.State
	cfg   Config
	caps  Capabilities

	closed bool
}

// Open verifies stdout is a terminal, detects capabilities, saves the
// current terminal attributes, enters raw mode, and emits the configured
// enable sequences. On any failure after attributes are saved, the
// returned error still leaves enough state for Close to clean up.
func Open(cfg Config) (*Backend, error) {
	out := os.Stdout
	in := os.Stdin

	if !xterm.IsTerminal(int(out.Fd())) {
		return nil, zithril.ErrNotATty
	}

	caps := DetectCapabilities(os.Getenv)

	saved, err := xterm.GetState(int(in.Fd()))
	if err != nil {
		return nil, zithril.ErrTerminalQueryFailed
	}

	b := &Backend{
		in:    in,
		out:   out,
		w:     NewWriter(out),
		saved: saved,
		cfg:   cfg,
		caps:  caps,
	}

	if _, err := xterm.MakeRaw(int(in.Fd())); err != nil {
		return b, zithril.ErrTerminalSetFailed
	}

	sgrMouse := cfg.MouseCapture
	globalState.Store(&panicState{
		fd:       int(in.Fd()),
		saved:    saved,
		cfg:      cfg,
		sgrMouse: sgrMouse,
	})

	b.emitEnable()
	if err := b.w.Flush(); err != nil {
		logger.Warn().Err(err).Msg("zithril: failed to flush enable sequences")
	}

	return b, nil
}

func (b *Backend) emitEnable() {
	if b.cfg.AlternateScreen {
		b.w.EnterAlternateScreen()
	}
	if b.cfg.HideCursor {
		b.w.HideCursor()
	}
	if b.cfg.MouseCapture {
		b.w.EnableMouse()
		b.w.EnableSGRMouse()
	}
	if b.cfg.BracketedPaste {
		b.w.EnableBracketedPaste()
	}
}

func (b *Backend) emitDisable() {
	if b.cfg.BracketedPaste {
		b.w.DisableBracketedPaste()
	}
	if b.cfg.MouseCapture {
		b.w.DisableSGRMouse()
		b.w.DisableMouse()
	}
	if b.cfg.HideCursor {
		b.w.ShowCursor()
	}
	if b.cfg.AlternateScreen {
		b.w.LeaveAlternateScreen()
	}
}

// Close emits the disable sequences in reverse order of Open's enables,
// restores the saved terminal attributes, and clears the panic-recovery
// state. Idempotent.
func (b *Backend) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true

	b.emitDisable()
	if err := b.w.Flush(); err != nil {
		logger.Warn().Err(err).Msg("zithril: failed to flush disable sequences")
	}

	globalState.Store(nil)

	if b.saved != nil {
		if err := xterm.Restore(int(b.in.Fd()), b.saved); err != nil {
			return zithril.ErrIoError
		}
	}
	return nil
}

// Writer exposes the backend's buffered ANSI output sink.
func (b *Backend) Writer() *Writer { return b.w }

// Capabilities returns the capability record detected at Open time.
func (b *Backend) Capabilities() Capabilities { return b.caps }

// ReadStdin reads raw bytes from the terminal's input file descriptor into
// p, blocking until at least one byte arrives. Callers feed the result
// straight into an input.Parser.
func (b *Backend) ReadStdin(p []byte) (int, error) {
	return b.in.Read(p)
}

// Size reports the terminal's current dimensions in cells.
func (b *Backend) Size() (width, height int, err error) {
	w, h, e := xterm.GetSize(int(b.out.Fd()))
	if e != nil {
		return 0, 0, zithril.ErrIoError
	}
	return w, h, nil
}

// RecoverTerminal is meant to be called from a deferred, recovered panic
// in application code. It consults the package-level panic state and
// emits the minimum restoration sequences directly to stdout with
// error-swallowing best-effort writes, then restores saved attributes.
// It allocates nothing beyond what the pre-built sequence slices already
// are, and never touches a Backend instance (which may be mid-mutation
// when the panic occurred) -- only the package-level state.
func RecoverTerminal() {
	st := globalState.Load()
	if st == nil {
		return
	}

	// Each write is a pre-built string constant; no slice is built up so
	// this stays allocation-free on the panic path.
	if st.cfg.BracketedPaste {
		_, _ = os.Stdout.WriteString("\x1b[?2004l")
	}
	if st.cfg.MouseCapture {
		if st.sgrMouse {
			_, _ = os.Stdout.WriteString("\x1b[?1006l")
		}
		_, _ = os.Stdout.WriteString("\x1b[?1003l\x1b[?1002l\x1b[?1000l")
	}
	if st.cfg.HideCursor {
		_, _ = os.Stdout.WriteString("\x1b[?25h")
	}
	if st.cfg.AlternateScreen {
		_, _ = os.Stdout.WriteString("\x1b[?1049l")
	}

	if st.saved != nil {
		_ = xterm.Restore(st.fd, st.saved)
	}

	globalState.Store(nil)
}
