// Package main provides the qubeflow command line tool for checking and compiling
// workflow files offline.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	err := newCommand(os.Stdout).Run(context.Background(), os.Args)
	if err != nil {
		if !errors.Is(err, errWorkflowInvalid) {
			fmt.Fprintln(os.Stderr, err)
		}

		os.Exit(1)
	}
}
