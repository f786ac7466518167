package main

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/fang"
)

// version is set with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	root := newRootCmd(newApp(os.Stdin, os.Stdout, os.Stderr))
	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(errorHandler),
	); err != nil {
		os.Exit(exitCodeFromErr(err))
	}
}

// ExitError carries an explicit exit code. A nil Err exits quietly: the command
// already printed what the user needs (e.g. the empty search result).
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

const (
	exitNotFound = 1
	exitUsage    = 2
)

func usageError(err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: exitUsage, Err: err}
}

func exitCodeFromErr(err error) int {
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return 1
}

func errorHandler(w io.Writer, styles fang.Styles, err error) {
	var ee *ExitError
	if errors.As(err, &ee) && ee.Err == nil {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}
