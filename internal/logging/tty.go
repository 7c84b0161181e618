package logging

import (
	"io"
	"os"

	"golang.org/x/term"
)

// IsTTY reports whether w is a terminal. Any writer with an Fd method, such
// as *os.File, can qualify.
func IsTTY(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// SupportsColor reports whether to write ANSI colors to w.
//
// NO_COLOR (https://no-color.org) and TERM=dumb disable color. Otherwise
// CLICOLOR_FORCE set to anything but "0" enables it, for piping colored logs
// into a pager. Failing all of those, color follows IsTTY.
func SupportsColor(w io.Writer) bool {
	return colorEnabled(IsTTY(w), os.LookupEnv)
}

func colorEnabled(isTTY bool, lookup func(string) (string, bool)) bool {
	if _, ok := lookup("NO_COLOR"); ok {
		return false
	}
	if v, _ := lookup("TERM"); v == "dumb" {
		return false
	}
	if v, ok := lookup("CLICOLOR_FORCE"); ok && v != "0" {
		return true
	}
	return isTTY
}
