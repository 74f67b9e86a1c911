// Package terminal provides prompt helpers: reading a secret without echo and
// clearing the prompt from the screen afterwards.
package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"atomicgo.dev/cursor"
	"golang.org/x/term"
)

// LinesUsed returns how many terminal rows textLength characters occupy at
// the given width. A non-positive width is treated as 80 columns.
func LinesUsed(textLength, width int) int {
	if width <= 0 {
		width = 80
	}
	lines := (textLength + width - 1) / width
	if lines < 1 {
		lines = 1
	}
	return lines
}

// ClearPreviousLines removes textLength characters of previously printed text
// (prompt plus echoed input) together with the empty line left by Enter.
func ClearPreviousLines(textLength int) {
	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}
	cursor.ClearLinesUp(LinesUsed(textLength, width))
	cursor.StartOfLine()
}

// ReadSecret prints prompt and reads one line. On a terminal the input is not
// echoed and the prompt is cleared afterwards; otherwise the line is read from in.
func ReadSecret(prompt string, in io.Reader) (string, error) {
	fmt.Print(prompt)
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Println()
		ClearPreviousLines(len(prompt))
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
