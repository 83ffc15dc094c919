package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"sysreport/internal/config"
	"sysreport/internal/models"
	"sysreport/internal/services"
	"sysreport/internal/views"

	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run parses args, builds one report and prints it. Query failures still
// exit 0; only bad flags exit non-zero.
func run(args []string, stdout, stderr io.Writer) int {
	var jsonOutput bool

	flagSet := pflag.NewFlagSet("sysreport", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.BoolVar(&jsonOutput, "json", false, "print the report as JSON instead of styled text")
	flagSet.Usage = func() { printHelp(stderr, flagSet) }

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		return 2
	}
	if flagSet.NArg() > 0 {
		fmt.Fprintf(stderr, "sysreport: unexpected argument: %s\n", flagSet.Arg(0))
		return 2
	}

	cfg, cfgErr := config.Load()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	if cfgErr != nil {
		logger.Warn("using default configuration", "error", cfgErr)
	}

	ctx := context.Background()
	if cfg.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.QueryTimeout)
		defer cancel()
	}

	probe := services.NewHostProbe(cfg.SysfsRoot, logger)
	result := services.BuildReport(ctx, probe, services.OptionsFromConfig(cfg, logger))

	if err := render(stdout, result, jsonOutput, cfg.NoColor); err != nil {
		logger.Error("could not write report", "error", err)
	}
	return 0
}

func render(w io.Writer, result models.Result, jsonOutput, noColor bool) error {
	if jsonOutput {
		return views.JSON(w, result)
	}
	views.Setup(noColor)
	defer views.Restore()
	return views.Styled(w, result)
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `sysreport: print a report of this host's CPU, memory, disks, network,
GPUs, sensors, top processes and battery.

Usage:
  sysreport [--json]

Flags:
%s
Settings such as the number of listed processes are read from
$SYSREPORT_CONFIG or $XDG_CONFIG_HOME/sysreport/config.yaml.
`, flagSet.FlagUsages())
}
