package cli

import (
	"io"
	"os"

	"github.com/codalotl/seqdiff/internal/diffview"
	"golang.org/x/term"
)

// useColor resolves a color mode. "auto" colors only when w is a terminal and NO_COLOR is unset.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	_, ok := terminalFd(w)
	return ok
}

// splitWidth returns configured if positive, else the width of the terminal w writes to, else diffview.DefaultWidth.
func splitWidth(configured int, w io.Writer) int {
	if configured > 0 {
		return configured
	}
	if fd, ok := terminalFd(w); ok {
		if width, _, err := term.GetSize(fd); err == nil && width > 0 {
			return width
		}
	}
	return diffview.DefaultWidth
}

func terminalFd(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok {
		return 0, false
	}
	fd := int(f.Fd())
	return fd, term.IsTerminal(fd)
}
