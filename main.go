// main is the entry point for the driftline CLI.
package main

import (
	"fmt"
	"os"

	"github.com/mfaulds/driftline/cmd"
	"github.com/mfaulds/driftline/internal/recordstore"
)

func main() {
	defer recordstore.CloseStore()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
