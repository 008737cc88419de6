package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"diff2md/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "diff2md: %v\n", err)
		os.Exit(1)
	}
}
