package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("qunit-codemod"),
		kong.Description("Migrate legacy global QUnit tests to the ember-qunit module API."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	sigCtx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err := ctx.Run(&Global{Ctx: sigCtx, Stdin: os.Stdin, Stdout: os.Stdout})
	ctx.FatalIfErrorf(err)
}
