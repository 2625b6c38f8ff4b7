// ABOUTME: Entry point for the ndl CLI.
// ABOUTME: Invokes the root Cobra command and releases storage on exit.
package main

import (
	"fmt"
	"os"
)

func main() {
	err := rootCmd.Execute()
	if cerr := closeResources(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
