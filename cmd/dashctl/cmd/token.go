package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"blogcanvas/internal/domain/session"
)

func newTokenCmd(_ *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage API tokens",
	}
	cmd.AddCommand(newTokenHashCmd(), newTokenNewCmd())
	return cmd
}

func newTokenHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash",
		Short: "Hash an API secret for the AUTH_TOKENS setting",
		Long: `Reads a secret and prints its bcrypt hash. On a terminal the secret is
read without echo, otherwise the first line of stdin is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			secret, err := readSecret(cmd)
			if err != nil {
				return err
			}
			hash, err := session.HashSecret(secret)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func newTokenNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new <user>",
		Short: "Generate a token for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := session.Issue(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s %s\n", dim("token:      "), creds.Token)
			fmt.Fprintf(w, "%s %s:%s\n", dim("auth_tokens:"), creds.UserID, creds.Hash)
			fmt.Fprintln(cmd.ErrOrStderr(), okMark("Store the token now, it cannot be recovered from the hash."))
			return nil
		},
	}
}

func readSecret(cmd *cobra.Command) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "Secret: ")
		secret, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read secret: %w", err)
		}
		return string(secret), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read secret: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
