package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"blogcanvas/internal/domain/card"
	"blogcanvas/internal/domain/layout"
	"blogcanvas/internal/domain/validation"
)

// ErrInvalidDocument is returned when a validated document does not conform.
var ErrInvalidDocument = errors.New("document is not valid")

func newValidateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate card and layout documents offline",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "card <file|->",
			Short: "Validate a card document",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				data, err := readInput(cmd, args[0])
				if err != nil {
					return err
				}
				c, err := card.ParseJSON(data)
				if err != nil {
					return printReport(cmd.OutOrStdout(), args[0], err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s card %s\n", okMark("OK"), args[0], c.Type.DisplayName(), dim(c.ID))
				return nil
			},
		},
		&cobra.Command{
			Use:   "layout <file|->",
			Short: "Validate a layout document",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				data, err := readInput(cmd, args[0])
				if err != nil {
					return err
				}
				l, err := layout.ParseJSON(data)
				if err != nil {
					return printReport(cmd.OutOrStdout(), args[0], err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %d cards, version %d\n", okMark("OK"), args[0], len(l.Cards), l.Version)
				return nil
			},
		},
	)
	return cmd
}

// printReport lists every failed field of a structural error.
func printReport(w io.Writer, name string, err error) error {
	ve, ok := validation.AsError(err)
	if !ok {
		return err
	}
	fmt.Fprintf(w, "%s %s: %d problem(s)\n", failMark("INVALID"), name, len(ve.Errors))
	for _, fe := range ve.Errors {
		field := fe.Field
		if field == "" {
			field = "(root)"
		}
		fmt.Fprintf(w, "  %s %s %s\n", field, dim("["+fe.Reason.String()+"]"), fe.Message)
	}
	return ErrInvalidDocument
}
