package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/apexfleet/botstrap/cmd/flags"
	"github.com/apexfleet/botstrap/runner"
)

var cliFlags = append([]cli.Flag{
	flags.StartupDelayFlag,
}, flags.LoggingFlags()...)

func main() {
	app := &cli.App{
		Name:      "waitrun",
		Usage:     "Optionally delay, then hand off to the given command without any secret mapping",
		ArgsUsage: "command [args...]",
		Flags:     cliFlags,
		Action:    run,
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(cCtx *cli.Context) error {
	argv := cCtx.Args().Slice()
	if len(argv) == 0 {
		return cli.Exit("no command given to hand off to", 2)
	}

	delay, err := runner.ParseStartupDelay(cCtx.String(flags.StartupDelayFlag.Name))
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	logger := flags.SetupLogger(cCtx)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := runner.Wait(ctx, logger, delay); err != nil {
		return cli.Exit("startup aborted during delay", 130)
	}

	stop()
	logger.Info("Handing off", "command", argv[0])
	if err := runner.Exec(argv); err != nil {
		return cli.Exit(err.Error(), 126)
	}
	return nil
}
