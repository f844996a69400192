// Package command builds the timing demo's command line.
package command

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/on-the-ground/memo_ive_go/demo/callexpr"
	"github.com/on-the-ground/memo_ive_go/demo/config"
	"github.com/on-the-ground/memo_ive_go/demo/funcs"
	"github.com/on-the-ground/memo_ive_go/memo"
	"github.com/urfave/cli/v3"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"
)

const instrumentationName = "github.com/on-the-ground/memo_ive_go/demo"

// New returns the root command. Timings and the summary go to out, logs and
// metrics to errOut.
func New(out, errOut io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "timing",
		Usage:     "time a memoized computation, cold and then warm",
		ArgsUsage: "[EXPR]",
		UsageText: fmt.Sprintf("timing [options] [EXPR]\n\nEXPR is a call of one of %v, e.g. fib(30) or binom(n=20, k=10).", funcs.Names()),
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML config file",
				Sources: cli.NewValueSourceChain(
					cli.EnvVar("MEMO_DEMO_CONFIG"),
				),
			},
			&cli.IntFlag{
				Name:    "runs",
				Aliases: []string{"r"},
				Usage:   "number of timed calls",
			},
			&cli.BoolFlag{
				Name:  "concurrent",
				Usage: "use the concurrency-safe memoizer",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
			&cli.BoolFlag{
				Name:  "metrics",
				Usage: "print memo hit/miss counters on exit",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return Run(ctx, cfg, out, errOut)
		},
	}
}

// resolveConfig layers defaults, the config file, flags and the positional
// expression, in that order.
func resolveConfig(cmd *cli.Command) (config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return cfg, err
	}
	if cmd.IsSet("runs") {
		cfg.Runs = int(cmd.Int("runs"))
		if cfg.Runs < 1 {
			return cfg, fmt.Errorf("--runs must be at least 1, got %d", cfg.Runs)
		}
	}
	if cmd.IsSet("concurrent") {
		cfg.Concurrent = cmd.Bool("concurrent")
	}
	if cmd.IsSet("log-level") {
		cfg.LogLevel = cmd.String("log-level")
	}
	if cmd.IsSet("metrics") {
		cfg.Metrics = cmd.Bool("metrics")
	}
	if cmd.Args().Present() {
		cfg.Expr = strings.Join(cmd.Args().Slice(), " ")
	}
	return cfg, nil
}

// Run evaluates cfg.Expr cfg.Runs times and prints one elapsed time in
// seconds per line, then a summary.
func Run(ctx context.Context, cfg config.Config, out, errOut io.Writer) error {
	logger, err := newLogger(cfg.LogLevel, errOut)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	opts := []memo.Option{memo.WithLogger(logger)}
	if cfg.Metrics {
		exporter, err := stdoutmetric.New(stdoutmetric.WithWriter(errOut), stdoutmetric.WithPrettyPrint())
		if err != nil {
			return fmt.Errorf("failed to create metric exporter: %w", err)
		}
		provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)))
		defer func() {
			if shutdownErr := provider.Shutdown(ctx); shutdownErr != nil {
				logger.Warn("failed to flush metrics", zap.Error(shutdownErr))
			}
		}()
		opts = append(opts, memo.WithMeter(provider.Meter(instrumentationName)))
	}

	parser, err := callexpr.New()
	if err != nil {
		return err
	}
	call, err := parser.Parse(cfg.Expr)
	if err != nil {
		return err
	}
	in, err := funcs.New(call.Func, cfg.Concurrent, opts...)
	if err != nil {
		return err
	}

	logger.Debug("timing", zap.Stringer("call", call), zap.Int("runs", cfg.Runs), zap.Bool("concurrent", cfg.Concurrent))
	report, err := Measure(in, call.Args, cfg.Runs)
	if err != nil {
		return fmt.Errorf("%s: %w", call, err)
	}

	for _, span := range report.Spans {
		fmt.Fprintln(out, strconv.FormatFloat(span.Duration().Seconds(), 'f', -1, 64))
	}
	fmt.Fprintf(out, "%s = %s (%s invocations, %s entries)\n",
		call,
		humanize.Comma(int64(report.Result)),
		humanize.Comma(report.Invocations),
		humanize.Comma(int64(report.Entries)),
	)
	return nil
}
