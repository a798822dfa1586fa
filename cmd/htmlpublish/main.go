package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/htmlpublish/cmd/htmlpublish/commands"
	ferrors "git.home.luguber.info/inful/htmlpublish/internal/foundation/errors"
	"git.home.luguber.info/inful/htmlpublish/internal/logfields"
	"git.home.luguber.info/inful/htmlpublish/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("htmlpublish"),
		kong.Description("Post-process a generated HTML documentation tree: copy assets and inject markup."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	globals := commands.NewGlobal(ctx, cli)
	err := parser.Run(globals, cli)

	if merr := globals.FlushMetrics(cli.MetricsFile); merr != nil {
		slog.Warn("Metrics not written", logfields.Error(merr))
	}
	if err != nil {
		cancel()
		ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
