package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/metrograph/internal/app"
	"github.com/vk/metrograph/internal/config"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// Parse processes command-line arguments. It returns populated app Options,
// a boolean indicating if the program should exit cleanly, or an ExitError.
// envFiles are passed to config.Load.
func Parse(args []string, output io.Writer, envFiles ...string) (*app.Options, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("metrograph", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
metrograph - shortest routes and transfer guides over a metro network.

Usage:
  metrograph [options] [FEED_PATH]

Arguments:
  FEED_PATH
    Path to a network feed (.hcl, .yaml, .yml or .json).

Examples:
  metrograph -from Xinzhuang -to "Shilong Road" feeds/shanghai.hcl
  metrograph -serve -port 8080 feeds/shanghai.hcl
  metrograph -remote http://localhost:8080 -watch

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to the YAML application config.")
	feedFlag := flagSet.String("feed", "", "Path to the network feed.")
	fFlag := flagSet.String("f", "", "Path to the network feed (shorthand).")
	fromFlag := flagSet.String("from", "", "Departure station for a route query.")
	toFlag := flagSet.String("to", "", "Arrival station for a route query.")
	serveFlag := flagSet.Bool("serve", false, "Run the HTTP and socket.io API.")
	portFlag := flagSet.Int("port", 8080, "Port for the HTTP API.")
	remoteFlag := flagSet.String("remote", "", "URL of a running server to query over socket.io.")
	watchFlag := flagSet.Bool("watch", false, "Print map changes from -remote until interrupted.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	settings, err := config.Load(*configFlag, envFiles...)
	if err != nil {
		return nil, false, usageError("%v", err)
	}

	// Only flags given explicitly override the file and environment.
	set := make(map[string]bool)
	flagSet.Visit(func(f *flag.Flag) { set[f.Name] = true })

	switch {
	case *feedFlag != "":
		settings.Feed = *feedFlag
	case *fFlag != "":
		settings.Feed = *fFlag
	case flagSet.NArg() > 0:
		settings.Feed = flagSet.Arg(0)
	}
	if flagSet.NArg() > 1 {
		return nil, false, usageError("unexpected arguments: %s", strings.Join(flagSet.Args()[1:], " "))
	}
	slog.Debug("Feed path determined.", "path", settings.Feed)

	if set["port"] {
		settings.Server.Port = *portFlag
	}
	if set["log-format"] {
		logFormat := strings.ToLower(*logFormatFlag)
		if logFormat != "text" && logFormat != "json" {
			return nil, false, usageError("invalid log-format: must be 'text' or 'json'")
		}
		settings.Log.Format = logFormat
	}
	if set["log-level"] {
		logLevel := strings.ToLower(*logLevelFlag)
		switch logLevel {
		case "debug", "info", "warn", "error":
			// valid
		default:
			return nil, false, usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
		}
		settings.Log.Level = logLevel
	}
	if err := config.Validate(settings); err != nil {
		return nil, false, usageError("%v", err)
	}

	opts := &app.Options{
		Settings: settings,
		From:     *fromFlag,
		To:       *toFlag,
		Serve:    *serveFlag,
		Remote:   *remoteFlag,
		Watch:    *watchFlag,
	}
	if err := opts.Validate(); err != nil {
		return nil, false, usageError("%v", err)
	}

	if !opts.Query() && !opts.Serve && !opts.Watch {
		slog.Debug("Nothing to do, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	slog.Debug("CLI parser finished successfully.", "feed", settings.Feed, "serve", opts.Serve, "remote", opts.Remote)
	return opts, false, nil
}
