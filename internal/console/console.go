// Package console centralises the tool's user-facing output. Warnings and
// failures go to stderr, coloured when the terminal supports it.
package console

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Stdout and Stderr are the output sinks. Tests swap them for buffers.
var (
	Stdout io.Writer = color.Output
	Stderr io.Writer = color.Error
)

var (
	warning = color.New(color.FgHiYellow)
	failure = color.New(color.FgHiRed)
)

func Outf(format string, a ...any) {
	fmt.Fprintf(Stdout, format, a...)
}

func Warnf(format string, a ...any) {
	warning.Fprintf(Stderr, format, a...)
}

func Errorf(format string, a ...any) {
	failure.Fprintf(Stderr, format, a...)
}
