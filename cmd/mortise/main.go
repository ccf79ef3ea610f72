// Command mortise generates router mortise templates: it derives solid
// geometry from measured parameters, emits the renderer script, and handles
// STL preview output.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "mortise",
	Short:         "Parametric router mortise template generator",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("error:", err)
		os.Exit(1)
	}
}
