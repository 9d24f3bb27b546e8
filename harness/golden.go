package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	zithril "github.com/hotschmoe/zithril-sub000"
)

const goldenHeaderPrefix = "# zithril-golden "

// UpdateSnapshotsEnv is the environment variable that, set to "1", makes
// a snapshot mismatch (or a missing file) overwrite/create the golden
// file instead of failing.
const UpdateSnapshotsEnv = "ZITHRIL_UPDATE_SNAPSHOTS"

// FormatSnapshot renders buf as the golden file's plain-text body: each
// row a line, width-0 placeholder cells omitted, no trailing-space
// trimming, header line first.
func FormatSnapshot(buf *zithril.Buffer) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s%dx%d\n", goldenHeaderPrefix, buf.Width(), buf.Height())
	for y := 0; y < buf.Height(); y++ {
		for x := 0; x < buf.Width(); x++ {
			cell := buf.Get(x, y)
			if cell.IsPlaceholder() {
				continue
			}
			sb.WriteRune(cell.Rune)
		}
		if y < buf.Height()-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// ParseSnapshot parses a golden file's contents, returning the declared
// width/height and the body rows.
func ParseSnapshot(data string) (width, height int, rows []string, err error) {
	lines := strings.Split(data, "\n")
	if len(lines) == 0 || !strings.HasPrefix(lines[0], goldenHeaderPrefix) {
		return 0, 0, nil, zithril.ErrInvalidGoldenFileHeader
	}
	dims := strings.TrimPrefix(lines[0], goldenHeaderPrefix)
	parts := strings.SplitN(dims, "x", 2)
	if len(parts) != 2 {
		return 0, 0, nil, zithril.ErrInvalidGoldenFileHeader
	}
	w, err1 := strconv.Atoi(parts[0])
	h, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0, 0, nil, zithril.ErrInvalidGoldenFileHeader
	}
	return w, h, lines[1:], nil
}

func goldenPath(name string) string {
	return filepath.Join("tests", "golden", name+".golden")
}

func writeSnapshot(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

func shouldUpdateSnapshots() bool {
	return os.Getenv(UpdateSnapshotsEnv) == "1"
}

// Snapshot compares the current buffer against the golden file
// tests/golden/<name>.golden, recording a failure on mismatch (with a
// line-by-line diff) unless ZITHRIL_UPDATE_SNAPSHOTS=1, in which case a
// mismatch or missing file overwrites/creates it.
func (h *Harness) Snapshot(name string) bool {
	path := goldenPath(name)
	got := FormatSnapshot(h.curr)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && shouldUpdateSnapshots() {
			if werr := writeSnapshot(path, got); werr != nil {
				h.record("snapshot", name, werr.Error())
				return false
			}
			return true
		}
		h.record("snapshot", name, fmt.Sprintf("missing golden file: %v", err))
		return false
	}

	w, ht, rows, perr := ParseSnapshot(string(data))
	if perr != nil {
		h.record("snapshot", name, perr.Error())
		return false
	}
	if w != h.curr.Width() || ht != h.curr.Height() {
		if shouldUpdateSnapshots() {
			_ = writeSnapshot(path, got)
			return true
		}
		h.record("snapshot", name, fmt.Sprintf("dimension mismatch: file %dx%d vs buffer %dx%d", w, ht, h.curr.Width(), h.curr.Height()))
		return false
	}

	wantBody := strings.Join(rows, "\n")
	gotBody := ""
	if idx := strings.IndexByte(got, '\n'); idx >= 0 {
		gotBody = got[idx+1:]
	}

	if wantBody == gotBody {
		return true
	}
	if shouldUpdateSnapshots() {
		_ = writeSnapshot(path, got)
		return true
	}
	h.record("snapshot", name, diffLines(wantBody, gotBody))
	return false
}

func diffLines(want, got string) string {
	wl := strings.Split(want, "\n")
	gl := strings.Split(got, "\n")
	n := len(wl)
	if len(gl) > n {
		n = len(gl)
	}
	var sb strings.Builder
	for i := 0; i < n; i++ {
		var w, g string
		if i < len(wl) {
			w = wl[i]
		}
		if i < len(gl) {
			g = gl[i]
		}
		if w != g {
			fmt.Fprintf(&sb, "line %d: want %q got %q\n", i, w, g)
		}
	}
	return sb.String()
}
