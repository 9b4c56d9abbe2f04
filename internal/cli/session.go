package cli

import (
	"io"

	"github.com/and161185/pedidos/internal/client"
	"github.com/and161185/pedidos/internal/clock"
	"github.com/and161185/pedidos/internal/config"
	"github.com/and161185/pedidos/internal/controller"
	"github.com/and161185/pedidos/internal/notify"
	"github.com/and161185/pedidos/internal/tui"
	"github.com/and161185/pedidos/internal/validation"
	"github.com/spf13/cobra"
)

// session wires one controller to the terminal for a single command.
type session struct {
	cfg  *config.Config
	ctrl *controller.Controller
	term *tui.Terminal
}

func newSession(cmd *cobra.Command, out io.Writer) (*session, error) {
	cfg, err := config.Load(cmd.Flags(), "stderr")
	if err != nil {
		return nil, err
	}

	clk := clock.Real()
	term := tui.NewTerminal(out)
	notifier := notify.NewService(term, clk, cfg.ToastDuration, cfg.TooltipDuration)
	api := client.New(cfg.APIAddress, cfg.RequestTimeout, cfg.Logger)
	engine := validation.NewEngine(cfg.MaxFutureDays, cfg.MinSignalPercentage)

	ctrl := controller.New(api, term, notifier, engine, controller.Options{
		Clock:         clk,
		Logger:        cfg.Logger,
		DebounceDelay: cfg.ValidationDelay,
	})

	return &session{cfg: cfg, ctrl: ctrl, term: term}, nil
}

func (s *session) Close() {
	s.ctrl.Close()
	_ = s.cfg.Logger.Sync()
}
