package cmd

import (
	"fmt"
	"strings"

	"github.com/benn-herrera/vbindgen/gen"
	"github.com/spf13/cobra"
)

// Version is set via ldflags at build time:
//
//	go build -ldflags "-X github.com/benn-herrera/vbindgen/cmd.Version=1.0.0"
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and exit",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("vbindgen %s\n", Version)
		if verbose {
			fmt.Printf("generators: %s\n", strings.Join(gen.All(), ", "))
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
