package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/kralicky/mcsetup/pkg/mcsetup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := mcsetup.BuildRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
