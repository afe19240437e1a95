// Command gatelog-demo walks through category and sink gating on a console
// sink, optionally mirrored to a rotating file and a zap logger, and can keep
// serving the admin API afterwards.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"pkt.systems/gatelog"
	"pkt.systems/gatelog/adminhttp"
	"pkt.systems/gatelog/ansi"
	"pkt.systems/gatelog/levelconf"
	"pkt.systems/gatelog/sink/console"
	"pkt.systems/gatelog/sink/file"
	"pkt.systems/gatelog/sink/zapsink"
)

type options struct {
	config   string
	admin    string
	logFile  string
	zap      bool
	palette  string
	location bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "gatelog-demo: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("gatelog-demo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.config, "config", "", "YAML level configuration applied after init")
	fs.StringVar(&opts.admin, "admin", "", "serve the admin API on this address after the walkthrough")
	fs.StringVar(&opts.logFile, "log-file", "", "also write records to this rotating file")
	fs.BoolVar(&opts.zap, "zap", false, "also forward records to a zap development logger")
	fs.StringVar(&opts.palette, "palette", "", "console palette ("+fmt.Sprint(ansi.AvailablePaletteNames())+")")
	fs.BoolVar(&opts.location, "location", gatelog.LocationEnabled(), "capture call locations")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	clock := gatelog.NewCachedClock(time.Millisecond)
	defer clock.Close()
	core := gatelog.NewCore(gatelog.WithClock(clock), gatelog.WithLocation(opts.location))

	network := gatelog.NewCategory("Network", gatelog.LevelMax)
	gui := gatelog.NewCategory("GUI", gatelog.LevelMax)
	admin := gatelog.NewCategory("Admin", gatelog.LevelInfo)

	consoleOpts := console.Options{Name: "StdOut"}
	if opts.palette != "" {
		consoleOpts.Palette = ansi.PaletteByName(opts.palette)
	}
	stdOut, envErr := console.NewFromEnv(console.WithEnvWriter(stdout), console.WithEnvOptions(consoleOpts))
	defer stdOut.Close()
	sinks := []*gatelog.Sink{stdOut.Sink()}

	if opts.logFile != "" {
		rotating := file.New(file.DefaultConfig(opts.logFile))
		defer rotating.Close()
		sinks = append(sinks, rotating.Sink())
	}
	if opts.zap {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("zap logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()
		sinks = append(sinks, zapsink.New("zap", logger, gatelog.LevelMax))
	}

	if err := core.Init([]*gatelog.Category{network, gui, admin}, sinks); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	if envErr != nil {
		_ = core.Error(gui, "console environment: %v", envErr)
	}
	if err := gatelog.ApplyEnv(core, gatelog.WithEnvReport(gui)); err != nil {
		_ = core.Warn(gui, "environment levels partially applied")
	}
	if opts.config != "" {
		doc, err := levelconf.Load(opts.config)
		if err != nil {
			return err
		}
		if err := doc.Apply(core); err != nil {
			return err
		}
	}

	walkthrough(core, network, gui, stdOut.Sink())

	if opts.admin == "" {
		return nil
	}
	return serveAdmin(ctx, core, admin, opts.admin)
}

func walkthrough(core *gatelog.Core, network, gui *gatelog.Category, stdOut *gatelog.Sink) {
	_ = core.Info(gui, "Application starting...")
	_ = core.Debug(network, "The time is: %s.", time.Now().Format(time.TimeOnly))
	_ = core.Debug(network, "We are in function %q.", gatelog.CurrentFn())

	_ = core.SetLevels(gatelog.LevelMin)
	network.SetLevel(gatelog.LevelInfo)

	_ = core.Info(gui, "This line should not be logged")
	_ = core.Info(network, "While this line should be")

	_ = core.SetLevels(core.MaxLevel())

	// By name, as an admin tool would.
	for _, sink := range core.Sinks() {
		if sink.Name() == "StdOut" {
			sink.SetLevel(gatelog.LevelFatal)
		}
	}
	// Or directly by reference.
	stdOut.SetLevel(gatelog.LevelFatal)

	_ = core.Info(gui, "This line should not be logged either")
	_ = core.Fatal(gui, "While this line should really be")

	stdOut.SetLevel(gatelog.LevelMax)

	_ = core.Off(network, "This line documents a log that was retired; it never reaches a sink")

	_ = core.Info(gui, "Application stopping...")
}

func serveAdmin(ctx context.Context, core *gatelog.Core, audit *gatelog.Category, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           adminhttp.New(core, adminhttp.WithAudit(audit)),
		ReadHeaderTimeout: 5 * time.Second,
		ErrorLog:          gatelog.StdLoggerWithLevel(core, audit, gatelog.LevelError),
	}
	errCh := make(chan error, 1)
	go func() {
		_ = core.Info(audit, "admin API listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	_ = core.Info(audit, "admin API stopped")
	return nil
}
