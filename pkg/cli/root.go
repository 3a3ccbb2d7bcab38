package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// NewRootCommand builds the oauth-mock command tree.
func NewRootCommand() *cobra.Command {
	var jsonOutput bool

	root := &cobra.Command{
		Use:   "oauth-mock",
		Short: "oauth-mock is a deterministic mock OAuth 2.0 / OpenID Connect provider",
		Long: `oauth-mock emulates the Google and LINE OAuth endpoints for local development
and automated tests. Every issued code and token is predictable, and ID tokens
are signed with a public HS256 development key.

Configuration is read from environment variables (and an optional .env file).
Flags on the serve command override the environment.`,
		SilenceUsage:  true,
		SilenceErrors: true, // We handle errors in Execute()
	}
	root.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")

	root.AddCommand(
		newServeCmd(),
		newVersionCmd(&jsonOutput),
		newTokenCmd(),
	)
	return root
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
