package ui

import (
	"fmt"
	"io"
	"os"
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// SetOutput redirects OK/Panel and Fail/Hint output; nil keeps the current writer.
func SetOutput(out, errOut io.Writer) {
	if out != nil {
		stdout = out
	}
	if errOut != nil {
		stderr = errOut
	}
}

// Stdout is the writer OK and Panel print to.
func Stdout() io.Writer { return stdout }

func OK(msg string) {
	t := Current()
	fmt.Fprintln(stdout, t.Success.Render(t.SymOK+" "+msg))
}

func Fail(msg string) {
	t := Current()
	fmt.Fprintln(stderr, t.Error.Render(t.SymFail+" "+msg))
}

// Hint prints a muted follow-up line under a failure.
func Hint(msg string) {
	fmt.Fprintln(stderr, Current().Muted.Render(msg))
}
