// strobe generates a reproducible active/idle CPU utilization pattern for
// external performance-measurement tools.
package main

import (
	"fmt"
	"os"

	"github.com/tdurand/strobe/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
