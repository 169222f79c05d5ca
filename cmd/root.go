package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
)

var warnColor = color.New(color.FgYellow, color.Bold)

var rootCmd = &cobra.Command{
	Use:   "vbindgen",
	Short: "V language binding generator for C libraries",
	Long:  "vbindgen turns the declaration IR of C library headers into V modules that call the C API directly.",
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
}

func Execute() error {
	return rootCmd.Execute()
}

// warnf prints a non-fatal warning to stderr. Warnings are shown even
// with --quiet.
func warnf(format string, args ...interface{}) {
	warnColor.Fprint(os.Stderr, " >> warning: ")
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
