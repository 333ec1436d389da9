package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/apexfleet/botstrap/cmd/flags"
	"github.com/apexfleet/botstrap/envsource"
	"github.com/apexfleet/botstrap/httpserver"
	"github.com/apexfleet/botstrap/interfaces"
	"github.com/apexfleet/botstrap/resolver"
	"github.com/apexfleet/botstrap/runner"
)

var cliFlags = append([]cli.Flag{
	flags.AppDirFlag,
	flags.StartupDelayFlag,
	flags.EnvSourceFlag,
	flags.SuperviseFlag,
	flags.StatusAddrFlag,
	flags.MetricsAddrFlag,
	flags.PprofFlag,
}, flags.LoggingFlags()...)

func main() {
	app := &cli.App{
		Name:      "entrypoint",
		Usage:     "Resolve per-instance bot secrets, optionally delay, then hand off to the given command",
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

	// A malformed STARTUP_DELAY is rejected before any mapping or delay
	// logic runs.
	delay, err := runner.ParseStartupDelay(cCtx.String(flags.StartupDelayFlag.Name))
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	logger := flags.SetupLogger(cCtx)
	appDir := interfaces.InstanceName(cCtx.String(flags.AppDirFlag.Name))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The process environment is always the first source so that
	// platform-injected variables win over file or remote sources.
	locations := []interfaces.SourceLocation{"process://"}
	for _, raw := range cCtx.StringSlice(flags.EnvSourceFlag.Name) {
		loc, err := interfaces.NewSourceLocation(raw)
		if err != nil {
			logger.Warn("Ignoring invalid env source", "locationURI", raw, "err", err)
			continue
		}
		locations = append(locations, loc)
	}

	factory := envsource.NewFactory(logger)
	multi, err := factory.CreateMultiSource(locations)
	if err != nil {
		return cli.Exit(fmt.Sprintf("creating env sources: %v", err), 1)
	}

	env, err := multi.Fetch(ctx)
	if err != nil {
		return cli.Exit(fmt.Sprintf("loading environment: %v", err), 1)
	}

	res := resolver.Resolve(logger, env, appDir)

	exported := make([]string, 0, len(res.Exports))
	for slot, value := range res.Exports {
		if err := os.Setenv(slot, value); err != nil {
			return cli.Exit(fmt.Sprintf("exporting %s: %v", slot, err), 1)
		}
		exported = append(exported, slot)
	}
	sort.Strings(exported)

	// Variables that only exist in extra sources are exported too; the
	// downstream program cannot read Vault or S3 itself. Anything already in
	// the process environment keeps its value.
	for k, v := range env {
		if _, exists := os.LookupEnv(k); !exists {
			if err := os.Setenv(k, v); err != nil {
				return cli.Exit(fmt.Sprintf("exporting %s: %v", k, err), 1)
			}
		}
	}

	if err := runner.Wait(ctx, logger, delay); err != nil {
		return cli.Exit("startup aborted during delay", 130)
	}

	if cCtx.Bool(flags.SuperviseFlag.Name) {
		stop() // the supervisor takes over signal handling
		return supervise(cCtx, logger, appDir.String(), int(delay.Seconds()), exported, argv)
	}

	stop()
	logger.Info("Handing off", "command", argv[0])
	if err := runner.Exec(argv); err != nil {
		return cli.Exit(err.Error(), 126)
	}
	return nil
}

func supervise(cCtx *cli.Context, logger *slog.Logger, instanceName string, delaySeconds int, exported []string, argv []string) error {
	sup := runner.NewSupervisor(logger, argv)

	var srv *httpserver.Server
	if cCtx.String(flags.StatusAddrFlag.Name) != "" || cCtx.String(flags.MetricsAddrFlag.Name) != "" {
		cfg := flags.ConfigureServer(cCtx, logger)
		var err error
		srv, err = httpserver.New(cfg, sup, instanceName, delaySeconds, exported)
		if err != nil {
			return cli.Exit(fmt.Sprintf("creating status server: %v", err), 1)
		}
		srv.RunInBackground()
	}

	code, err := sup.Run(context.Background())
	if srv != nil {
		srv.Shutdown()
	}
	if err != nil {
		return cli.Exit(err.Error(), 126)
	}
	return cli.Exit("", code)
}
