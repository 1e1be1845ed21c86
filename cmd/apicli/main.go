package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/fivetwenty-io/apicli/cmd/apicli/commands"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	code := commands.Execute(ctx, commands.Options{
		Version: version,
		Commit:  commit,
		Date:    date,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}, os.Args[1:])

	stop()
	os.Exit(code)
}
