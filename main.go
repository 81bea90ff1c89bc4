// Chatty is a command line tool for question answering over a private
// document collection. See internal/adapters/driving/cli for the
// command surface.
package main

import (
	"fmt"
	"os"

	"github.com/chatty-labs/chatty-cli/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
