package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/and161185/pedidos/internal/config"
	"github.com/and161185/pedidos/internal/errs"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "pedidos",
		Short:         "Gerencia pedidos agendados",
		Long:          "pedidos cadastra, lista, edita e exclui pedidos com data de entrega agendada.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	config.BindFlags(cmd.PersistentFlags())

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newCreateCmd())
	cmd.AddCommand(newEditCmd())
	cmd.AddCommand(newDeleteCmd())
	cmd.AddCommand(newServeCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

// Execute runs the command line. Failures the terminal already presented are
// not printed a second time.
func Execute(ctx context.Context, stderr io.Writer) error {
	err := newRootCmd().ExecuteContext(ctx)
	if err == nil {
		return nil
	}

	var failure *errs.Failure
	if !errors.As(err, &failure) {
		fmt.Fprintln(stderr, "Erro:", err)
	}
	return err
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pedidos %s (%s)\n", version, commit)
		},
	}
}
