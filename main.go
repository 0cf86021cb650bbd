package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/temirov/gamm/cmd/cli"
	"github.com/temirov/gamm/internal/reconcile"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main executes the gamm command-line application.
func main() {
	executionError := cli.Execute()
	if executionError == nil {
		return
	}
	if !errors.Is(executionError, reconcile.ErrCommitRetryRequired) {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
	}
	os.Exit(1)
}
