package zithril

import "errors"

// Sentinel error kinds, matched with errors.Is. Each names where it
// originates: backend initialisation, terminal I/O, or snapshot loading.
var (
	// ErrNotATty is returned by backend initialisation when the output
	// stream is not a terminal.
	ErrNotATty = errors.New("zithril: output is not a tty")

	// ErrTerminalQueryFailed is returned when saving the current terminal
	// attributes fails.
	ErrTerminalQueryFailed = errors.New("zithril: failed to query terminal attributes")

	// ErrTerminalSetFailed is returned when entering raw mode fails. The
	// caller may still tear down safely: attributes were already saved.
	ErrTerminalSetFailed = errors.New("zithril: failed to set terminal attributes")

	// ErrIoError is returned when a terminal I/O call fails (restoring the
	// saved attributes in Close, querying the size in Size).
	ErrIoError = errors.New("zithril: terminal io error")

	// ErrInvalidGoldenFileHeader is returned by the snapshot loader when
	// the leading "# zithril-golden WxH" header is absent or malformed.
	ErrInvalidGoldenFileHeader = errors.New("zithril: invalid golden file header")
)
