package pretty

import (
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// defaultWidth is assumed when the writer is not a terminal.
const defaultWidth = 80

// TerminalWidth returns the column width of the writer's terminal, or
// a default for pipes and files.
func TerminalWidth(writer io.Writer) int {
	if f, ok := writer.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultWidth
}

// Divider renders a dim horizontal rule of the given width.
func (s *Styles) Divider(width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	return s.Dim.Render(strings.Repeat("─", width))
}
