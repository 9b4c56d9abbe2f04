package cli

import (
	"github.com/and161185/pedidos/internal/config"
	"github.com/and161185/pedidos/internal/deps"
	"github.com/and161185/pedidos/internal/server"
	"github.com/and161185/pedidos/internal/storage"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the development pedidos API",
		Long:  "Serve the /pedidos API backed by memory, or by PostgreSQL when a database URI is given.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags(), "stdout")
			if err != nil {
				return err
			}
			defer func() { _ = cfg.Logger.Sync() }()

			ctx := cmd.Context()
			d := deps.NewDependencies(cfg.Logger)

			var store server.Storage
			if cfg.DatabaseURI != "" {
				pg, err := storage.NewPostgresStorage(ctx, cfg.DatabaseURI)
				if err != nil {
					return err
				}
				defer pg.Close()
				store = pg
			} else {
				cfg.Logger.Info("DATABASE_URI not set, orders are kept in memory")
				store = storage.NewMemoryStorage()
			}

			return server.NewServer(store, cfg, d).Run(ctx)
		},
	}

	def := config.Default()
	cmd.Flags().StringP("address", "a", def.RunAddress, "Address to listen on")
	cmd.Flags().StringP("database", "d", "", "PostgreSQL connection URI")

	return cmd
}
