package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"blogcanvas/internal/domain/layout"
)

func newLayoutCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Export, import, reset or delete stored layouts",
	}
	cmd.AddCommand(
		newLayoutExportCmd(a),
		newLayoutImportCmd(a),
		newLayoutResetCmd(a),
		newLayoutDeleteCmd(a),
	)
	return cmd
}

func owner(user string) layout.Owner {
	return layout.Owner{UserID: user}
}

func newLayoutExportCmd(a *app) *cobra.Command {
	var user, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print a layout as JSON, creating the default one when missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, st, err := a.layouts(cmd.Context())
			if err != nil {
				return err
			}
			defer a.closeStorage(st)

			l, err := svc.Get(cmd.Context(), owner(user))
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(l, "", "  ")
			if err != nil {
				return fmt.Errorf("encode layout: %w", err)
			}
			data = append(data, '\n')

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%s exported %s (version %d) to %s\n", okMark("OK"), owner(user).Key(), l.Version, output)
			return nil
		},
	}
	ownerFlag(cmd, &user)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}

func newLayoutImportCmd(a *app) *cobra.Command {
	var (
		user      string
		ifVersion int
	)

	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Replace the cards of a stored layout with those of a layout document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			svc, st, err := a.layouts(cmd.Context())
			if err != nil {
				return err
			}
			defer a.closeStorage(st)

			l, err := svc.Replace(cmd.Context(), owner(user), data, ifVersion)
			if err != nil {
				return printReport(cmd.OutOrStdout(), args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s imported %d cards into %s, version %d\n", okMark("OK"), len(l.Cards), owner(user).Key(), l.Version)
			return nil
		},
	}
	ownerFlag(cmd, &user)
	cmd.Flags().IntVar(&ifVersion, "if-version", layout.AnyVersion, "fail unless the stored layout has this version")
	return cmd
}

func newLayoutResetCmd(a *app) *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore the default cards of a layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, st, err := a.layouts(cmd.Context())
			if err != nil {
				return err
			}
			defer a.closeStorage(st)

			l, err := svc.Reset(cmd.Context(), owner(user))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s reset %s, version %d\n", okMark("OK"), owner(user).Key(), l.Version)
			return nil
		},
	}
	ownerFlag(cmd, &user)
	return cmd
}

func newLayoutDeleteCmd(a *app) *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a stored layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, st, err := a.layouts(cmd.Context())
			if err != nil {
				return err
			}
			defer a.closeStorage(st)

			if err := svc.Delete(cmd.Context(), owner(user)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s deleted %s\n", okMark("OK"), owner(user).Key())
			return nil
		},
	}
	ownerFlag(cmd, &user)
	return cmd
}
