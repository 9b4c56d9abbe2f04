package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/and161185/pedidos/internal/cli"
	_ "github.com/joho/godotenv/autoload"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, os.Stderr); err != nil {
		stop()
		os.Exit(1)
	}
}
