package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/spf13/pflag"
	"github.com/tartampluch/go-luach/internal/config"
	"github.com/tartampluch/go-luach/internal/engine"
	"github.com/tartampluch/go-luach/internal/export"
	"github.com/tartampluch/go-luach/internal/server"
)

// main hands the exit code of runMain to os.Exit, which skips deferred
// calls; runMain's own defers (log file, signal context) have run by then.
func main() {
	os.Exit(runMain(os.Args[1:], os.Stdout))
}

// runMain parses args, loads settings and runs the calendar, returning the
// process exit code.
func runMain(args []string, stdout io.Writer) int {
	// 1. Flags and settings.
	fs := pflag.NewFlagSet(config.ConfigFileName, pflag.ContinueOnError)
	config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return config.ExitCodeSuccess
		}
		return config.ExitCodeError
	}

	if v, _ := fs.GetBool(config.FlagVersion); v {
		printVersion(stdout)
		return config.ExitCodeSuccess
	}

	settings, err := config.Load(fs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return config.ExitCodeError
	}

	// 2. Logging.
	logCloser := setupLogging(settings.Log.Debug)
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close() // Best effort close
		}()
	}

	// 3. Cancel on SIGINT or SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo()

	// 4. Print or serve.
	if err := run(ctx, settings, stdout); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// run wires the generator and either prints the calendar or serves it.
func run(ctx context.Context, s *config.Settings, stdout io.Writer) error {
	opts, err := engine.OptionsFromSettings(s)
	if err != nil {
		return err
	}
	gen := engine.NewGenerator(nil, engine.NewSedraPortions())
	exportOpts := export.Options{
		Locale:   s.Calendar.Locale,
		Reminder: s.Server.CandleReminder,
	}

	if !s.Server.Enabled {
		return writeCalendar(stdout, gen, opts, exportOpts, s.Output.Format)
	}

	srv := server.NewCalendarServer(s.Server.Port)
	build := func() (server.Feed, error) {
		return buildFeed(gen, opts, exportOpts)
	}
	if err := srv.Refresh(build); err != nil {
		return err
	}
	if err := srv.Schedule(ctx, s.Server.RefreshCron, build); err != nil {
		return err
	}
	return srv.Start(ctx)
}

// writeCalendar generates the calendar once and writes it in format.
func writeCalendar(w io.Writer, gen *engine.Generator, opts engine.CalOptions, exportOpts export.Options, format string) error {
	events, err := gen.Calendar(opts)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrCalendarBuild, err)
	}

	var data []byte
	switch format {
	case config.FormatICS:
		data, err = export.ICS(events, exportOpts)
	case config.FormatJSON:
		data, err = export.JSON(events, exportOpts)
	default:
		data = export.Text(events, exportOpts)
	}
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%s: %w", config.ErrWriteResp, err)
	}
	return nil
}

// buildFeed renders every served format from one generation.
func buildFeed(gen *engine.Generator, opts engine.CalOptions, exportOpts export.Options) (server.Feed, error) {
	events, err := gen.Calendar(opts)
	if err != nil {
		return server.Feed{}, err
	}
	ics, err := export.ICS(events, exportOpts)
	if err != nil {
		return server.Feed{}, err
	}
	js, err := export.JSON(events, exportOpts)
	if err != nil {
		return server.Feed{}, err
	}
	return server.Feed{ICS: ics, JSON: js}, nil
}

// printVersion outputs the build information.
func printVersion(w io.Writer) {
	fmt.Fprintf(w, config.MsgVersionOutput,
		config.AppName,
		config.Version,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo records build and runtime details.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyCommit, config.Commit),
			slog.String(config.LogKeyBuilt, config.Date),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default slog logger. Stdout carries the
// calendar, so logs go to stderr and the cache-dir log file.
func setupLogging(debugMode bool) io.Closer {
	writers := []io.Writer{os.Stderr}
	var logFile *os.File

	if logPath, err := getLogFilePath(); err == nil {
		// Truncated on every start.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelWarn
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts))
	slog.SetDefault(logger)

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath returns the log file path under the user cache directory,
// creating the application directory if needed.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)

	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
