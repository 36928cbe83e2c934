package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/gridbox/cmd/gridbox"
	"github.com/arthur-debert/gridbox/pkg/core"
	"github.com/arthur-debert/gridbox/pkg/ui/styles"
)

func main() {
	// Initialize core system (registers backends, loads config)
	core.MustInitialize()

	rootCmd := gridbox.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// Print the error in red
		errorStyle := styles.GetStyle("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
