// Command citadel runs the CRM backend-for-frontend and its terminal client.
package main

import (
	"fmt"
	"os"

	"github.com/boddenberg/citadel-bfa-go/internal/config"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var envFile string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "citadel",
		Short:         "Citadel CRM backend-for-frontend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Values already in the environment win over the file.
			return config.LoadDotEnv(envFile)
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading configuration")

	root.AddCommand(newServeCmd())
	root.AddCommand(newCardCmd())
	root.AddCommand(newTokenCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "citadel "+version)
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
