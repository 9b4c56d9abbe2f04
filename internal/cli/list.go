package cli

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var (
		past       bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List scheduled orders",
		Long:  "List orders due from now on, or past orders with --past.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if jsonOutput {
				out = io.Discard
			}

			s, err := newSession(cmd, out)
			if err != nil {
				return err
			}
			defer s.Close()
			if jsonOutput {
				s.term.SetAlertOutput(cmd.ErrOrStderr())
			}

			if past {
				err = s.ctrl.ListPast(cmd.Context())
			} else {
				err = s.ctrl.ListCurrent(cmd.Context())
			}
			if err != nil {
				return err
			}

			if jsonOutput {
				orders, _ := s.ctrl.Orders()
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(orders)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&past, "past", false, "List past orders instead")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
