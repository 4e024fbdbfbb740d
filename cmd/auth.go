package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mochizo/meetslot/internal/google"
)

func newAuthCmd() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize Google Calendar access for an account",
		Long: `Run the OAuth flow for a Google account. Prints the authorization URL,
waits for the authorization code on stdin, and stores the resulting
token under ~/.cache/meetslot/.

Tokens are refreshed automatically afterwards; authorization is only
needed once per account.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if google.HasTokenForAccount(account) {
				fmt.Printf("Account %q already has a stored token. Continuing will replace it.\n\n", account)
			}

			fmt.Printf("Visit this URL in your browser and authorize access:\n\n  %s\n\n", google.GetAuthURLForAccount(account))
			fmt.Print("Enter the authorization code: ")

			reader := bufio.NewReader(os.Stdin)
			code, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read authorization code: %w", err)
			}
			code = strings.TrimSpace(code)
			if code == "" {
				return fmt.Errorf("no authorization code given")
			}

			if err := google.SaveTokenForAccount(context.Background(), account, code); err != nil {
				return fmt.Errorf("failed to save token for account %s: %w", account, err)
			}

			fmt.Printf("Authorization successful for account %q.\n", account)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Google account name to use (default: 'default')")

	return cmd
}
