package logging

import (
	"io"
	"os"

	"golang.org/x/term"
)

// IsTTY reports whether w is a terminal. Any writer with an Fd method is
// checked, others are never terminals.
func IsTTY(w io.Writer) bool {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// SupportsColor reports whether ANSI colours should be written to w.
func SupportsColor(w io.Writer) bool {
	return IsTTY(w) && colorAllowed(os.LookupEnv)
}

// colorAllowed applies NO_COLOR (https://no-color.org) and TERM=dumb.
func colorAllowed(lookup func(string) (string, bool)) bool {
	if _, ok := lookup("NO_COLOR"); ok {
		return false
	}
	if v, _ := lookup("TERM"); v == "dumb" {
		return false
	}
	return true
}
