package console

import (
	"io"

	"golang.org/x/term"
)

type fdWriter interface {
	Fd() uintptr
}

func isTerminal(w io.Writer) bool {
	if unwrapper, ok := w.(interface{ Unwrap() io.Writer }); ok {
		w = unwrapper.Unwrap()
	}
	f, ok := w.(fdWriter)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
