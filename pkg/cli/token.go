package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getmockd/oauth-mock/pkg/cli/internal/output"
	"github.com/getmockd/oauth-mock/pkg/config"
	"github.com/getmockd/oauth-mock/pkg/oauth"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue and inspect mock ID tokens",
	}
	cmd.AddCommand(newTokenIssueCmd(), newTokenDecodeCmd())
	return cmd
}

func newTokenIssueCmd() *cobra.Command {
	var (
		provider string
		clientID string
		nonce    string
		userFile string
	)

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Print the ID token a provider would return for a code exchange",
		Long: `Print the ID token a provider would return for a code exchange.

The token is identical to the one the running server issues for the same
client id, nonce and user, so it can be pasted into tests directly.`,
		Example: `  oauth-mock token issue --provider google --client-id my-app
  oauth-mock token issue --provider line --client-id 1234567890 --nonce abc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key := strings.ToLower(provider)
			user, err := config.LoadUser(key, userFile)
			if err != nil {
				return err
			}
			profile, err := oauth.NewProfile(key, user)
			if err != nil {
				return err
			}
			if nonce != "" && !profile.BindsNonce() {
				output.Warn(cmd.ErrOrStderr(), "the %s profile does not carry a nonce; --nonce is ignored", key)
			}

			token, err := oauth.IssueIDToken(profile, clientID, nonce)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&provider, "provider", oauth.ProviderGoogle, "Provider profile (google or line)")
	cmd.Flags().StringVar(&clientID, "client-id", "", "Audience of the token (default \""+oauth.DefaultClientID+"\")")
	cmd.Flags().StringVar(&nonce, "nonce", "", "Nonce to embed (line only)")
	cmd.Flags().StringVar(&userFile, "user-file", "", "JSON or YAML file overriding the mock user")
	return cmd
}

func newTokenDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <id-token>",
		Short: "Verify a mock ID token and print its claims",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			claims, err := oauth.ParseIDToken(strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			return output.JSON(cmd.OutOrStdout(), claims)
		},
	}
}
