package flags

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/apexfleet/botstrap/common"
	"github.com/apexfleet/botstrap/httpserver"
	"github.com/apexfleet/botstrap/instance"
)

func SetupLogger(cCtx *cli.Context) (log *slog.Logger) {
	logJSON := cCtx.Bool(LogJsonFlag.Name)
	logDebug := cCtx.Bool(LogDebugFlag.Name)
	logUID := cCtx.Bool(LogUidFlag.Name)
	logService := cCtx.String(LogServiceFlag.Name)

	logger := common.SetupLogger(&common.LoggingOpts{
		Debug:   logDebug,
		JSON:    logJSON,
		Service: logService,
		Version: common.Version,
	})

	if logUID {
		id := uuid.Must(uuid.NewRandom())
		logger = logger.With("uid", id.String())
	}
	return logger
}

func ConfigureServer(cCtx *cli.Context, logger *slog.Logger) *httpserver.Config {
	return &httpserver.Config{
		ListenAddr:               cCtx.String(StatusAddrFlag.Name),
		MetricsAddr:              cCtx.String(MetricsAddrFlag.Name),
		EnablePprof:              cCtx.Bool(PprofFlag.Name),
		Log:                      logger,
		GracefulShutdownDuration: 5 * time.Second,
		ReadTimeout:              10 * time.Second,
		WriteTimeout:             10 * time.Second,
	}
}

var AppDirFlag *cli.StringFlag = &cli.StringFlag{
	Name:    "app-dir",
	Usage:   "Instance identifier selecting the secret mapping branch",
	EnvVars: []string{instance.EnvAppDir},
}

var StartupDelayFlag *cli.StringFlag = &cli.StringFlag{
	Name:    "startup-delay",
	Usage:   "Seconds to pause before handing off; empty means no delay",
	EnvVars: []string{instance.EnvStartupDelay},
}

var EnvSourceFlag *cli.StringSliceFlag = &cli.StringSliceFlag{
	Name:    "env-source",
	Usage:   "Additional env source URI (file://, vault://, s3://); repeatable",
	EnvVars: []string{instance.EnvSources},
}

var SuperviseFlag *cli.BoolFlag = &cli.BoolFlag{
	Name:    "supervise",
	Usage:   "Run the command as a subprocess with signal forwarding instead of replacing the process; required for the status and metrics endpoints",
	EnvVars: []string{"SUPERVISE"},
}

var StatusAddrFlag *cli.StringFlag = &cli.StringFlag{
	Name:    "status-addr",
	Usage:   "Address to listen on for the status server; only used with --supervise",
	EnvVars: []string{"STATUS_ADDR"},
}

var MetricsAddrFlag *cli.StringFlag = &cli.StringFlag{
	Name:    "metrics-addr",
	Usage:   "Address to listen on for Prometheus metrics; only used with --supervise",
	EnvVars: []string{"METRICS_ADDR"},
}

var PprofFlag *cli.BoolFlag = &cli.BoolFlag{
	Name:  "pprof",
	Usage: "Enable pprof debug endpoint on the status server",
}

var LogJsonFlag = &cli.BoolFlag{
	Name:  "log-json",
	Value: false,
	Usage: "log in JSON format",
}
var LogDebugFlag = &cli.BoolFlag{
	Name:  "log-debug",
	Value: false,
	Usage: "log debug messages",
}
var LogUidFlag = &cli.BoolFlag{
	Name:  "log-uid",
	Value: false,
	Usage: "generate a uuid and add to all log messages",
}
var LogServiceFlag = &cli.StringFlag{
	Name:  "log-service",
	Value: common.PackageName,
	Usage: "add 'service' tag to logs",
}

// LoggingFlags returns the shared logging flag set.
func LoggingFlags() []cli.Flag {
	return []cli.Flag{LogJsonFlag, LogDebugFlag, LogUidFlag, LogServiceFlag}
}
