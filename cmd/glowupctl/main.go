// Command glowupctl inspects and resets a GlowUp state store, either directly
// on disk or through a running service with --server.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
