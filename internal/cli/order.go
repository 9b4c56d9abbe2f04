package cli

import (
	"fmt"
	"strconv"

	"github.com/and161185/pedidos/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var fieldFlags = []struct {
	name  string
	field model.Field
	usage string
}{
	{"produto", model.FieldProduto, "Produto"},
	{"quantidade", model.FieldQuantidade, "Quantidade"},
	{"valor-total", model.FieldValorTotal, "Valor total (R$)"},
	{"descricao", model.FieldDescricao, "Descrição"},
	{"cliente", model.FieldNomeCliente, "Nome do cliente"},
	{"contato", model.FieldContato, "Contato do cliente"},
	{"sinal", model.FieldValorSinal, "Valor do sinal (R$)"},
	{"data", model.FieldDataEntrega, "Data de entrega (AAAA-MM-DD)"},
	{"hora", model.FieldHoraEntrega, "Hora de entrega (HH:MM)"},
}

func bindFieldFlags(fs *pflag.FlagSet) {
	for _, f := range fieldFlags {
		fs.String(f.name, "", f.usage)
	}
}

// applyFieldFlags feeds flag values into the form. With onlyChanged, flags the
// user did not pass keep the value already in the form.
func applyFieldFlags(fs *pflag.FlagSet, s *session, onlyChanged bool) error {
	for _, f := range fieldFlags {
		if onlyChanged && !fs.Changed(f.name) {
			continue
		}
		value, err := fs.GetString(f.name)
		if err != nil {
			return err
		}
		s.ctrl.SetField(f.field, value)
	}
	return nil
}

func newCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an order",
		Example: `  pedidos create --produto "Bolo de cenoura" --quantidade 1 --valor-total 120 \
    --sinal 30 --cliente Ana --contato "11 99999-0000" --data 2030-05-10 --hora 14:00`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer s.Close()

			s.ctrl.Start()
			if err := applyFieldFlags(cmd.Flags(), s, false); err != nil {
				return err
			}
			return s.ctrl.Submit(cmd.Context())
		},
	}

	bindFieldFlags(cmd.Flags())
	return cmd
}

func newEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an order",
		Long:  "Load an order, overlay the given fields and save it again.",
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

			if err := s.ctrl.Edit(cmd.Context(), id); err != nil {
				return err
			}
			if err := applyFieldFlags(cmd.Flags(), s, true); err != nil {
				return err
			}
			return s.ctrl.Submit(cmd.Context())
		},
	}

	bindFieldFlags(cmd.Flags())
	return cmd
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid order id %q", arg)
	}
	return id, nil
}
