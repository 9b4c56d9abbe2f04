package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			s, err := newSession(cmd, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer s.Close()

			s.ctrl.RequestDelete(id)

			if !yes && !confirm(cmd) {
				s.ctrl.CancelDelete()
				fmt.Fprintln(cmd.OutOrStdout(), "Exclusão cancelada.")
				return nil
			}
			return s.ctrl.ConfirmDelete(cmd.Context())
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func confirm(cmd *cobra.Command) bool {
	fmt.Fprint(cmd.OutOrStdout(), "Confirmar? [s/N] ")

	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "s", "sim", "y", "yes":
		return true
	default:
		return false
	}
}
