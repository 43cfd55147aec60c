package errors

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
)

var (
	errorStyleBG  = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	errorColorFG  = pterm.FgRed
	markerColorFG = pterm.FgLightYellow
	lineColorFG   = pterm.FgGray
)

// DisplayErrors prints a list of Bead errors in a user-friendly format,
// including the source line and a position marker when the error carries a
// source reference.
func DisplayErrors(errs []BeadError) {
	for _, err := range errs {
		pos := err.Pos()

		errorStyleBG.Print(fmt.Sprintf(" %s Error ", err.Kind()))
		if pos.Source != nil {
			errorColorFG.Println(fmt.Sprintf(" %s:%d:%d: %s", pos.Source.DisplayPath(), pos.Line, pos.Column, err.Message()))
		} else {
			errorColorFG.Println(" " + err.Message())
		}

		if pos.Source == nil {
			continue
		}

		lines := pos.Source.Lines()
		lineIdx := pos.Line - 1
		if lineIdx < 0 || lineIdx >= len(lines) {
			continue
		}

		sourceLine := strings.TrimRight(lines[lineIdx], "\r\n\t ")
		lineColorFG.Println("  " + sourceLine)

		// Caret marker under the offending column.
		col := pos.Column - 1
		if col < 0 {
			col = 0
		}
		if col > len(sourceLine) {
			col = len(sourceLine)
		}
		markerColorFG.Println("  " + strings.Repeat(" ", col) + "^")
		fmt.Println()
	}
}
