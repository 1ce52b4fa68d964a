// Command alpaca-client talks to a single ASCOM Alpaca device.
//
// Without -interactive it prints the common device information and exits.
// With -interactive it opens a command shell for reading and writing any
// attribute of the device.
//
// Usage:
//
//	alpaca-client [flags]
//
// Flags:
//
//	-config string         Configuration file path (YAML, keys as flag names)
//	-host string           Alpaca server address (default "localhost:11111")
//	-scheme string         URL scheme: http or https (default "http")
//	-device-type string    Device type (default "telescope")
//	-device-number uint    Device number
//	-client-id int         Client id, -1 picks a random one (default -1)
//	-timeout duration      Per request timeout (default 30s)
//	-log-level string      Log level: debug, info, warn, error (default "info")
//	-protocol-log string   Write a protocol capture to this file (.alog)
//	-interactive           Enable interactive command mode
//
// Examples:
//
//	# Show information about the first telescope
//	alpaca-client -host 192.168.1.20:11111
//
//	# Open a shell on camera 1 and capture the traffic
//	alpaca-client -device-type camera -device-number 1 -interactive -protocol-log cam.alog
//
// Interactive Commands:
//
//	get <attribute> [Name=Value...]   - Read an attribute
//	set <attribute> Name=Value...     - Write an attribute
//	action <name> [params...]         - Invoke a custom action
//	connect / disconnect              - Change the connection state
//	info                              - Show device information
//	blind|bool|string <cmd> [raw]     - Send a legacy command
//	quit                              - Exit the client
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alpaca-client/alpaca-go/cmd/alpaca-client/interactive"
	"github.com/alpaca-client/alpaca-go/pkg/interaction"
	"github.com/alpaca-client/alpaca-go/pkg/log"
	"github.com/alpaca-client/alpaca-go/pkg/transport"
)

func main() {
	cfg, err := parseConfig(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg Config) error {
	level, _ := parseLogLevel(cfg.LogLevel)
	logger := setupLogging(os.Stderr, level)

	ep, err := cfg.Endpoint()
	if err != nil {
		return err
	}
	id := cfg.Identity()

	capture, closeCapture, err := setupProtocolLog(cfg.ProtocolLog, logger, level)
	if err != nil {
		return err
	}
	defer closeCapture()

	httpCfg := transport.DefaultHTTPConfig()
	httpCfg.Timeout = cfg.Timeout
	httpCfg.InsecureSkipVerify = cfg.InsecureSkipVerify
	httpCfg.ProtocolLogger = capture
	httpCfg.Logger = logger
	tr := transport.NewHTTP(httpCfg)

	client := interaction.NewClient(ep, tr, id)

	logger.Info("alpaca client",
		"endpoint", ep.BaseURL(),
		"client_id", id.ClientID(),
		"session", tr.SessionID())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.Interactive {
		shell, err := interactive.New(client)
		if err != nil {
			return err
		}
		shell.Run(ctx, cancel)
		return nil
	}

	info, err := client.ReadInfo(ctx)
	if err != nil {
		return fmt.Errorf("failed to read device information: %w", err)
	}
	interactive.PrintInfo(os.Stdout, info)
	return nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", s)
	}
}

func setupLogging(w io.Writer, level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// setupProtocolLog creates the capture logger: a file when path is set, and
// debug records on the operational logger at debug level.
func setupProtocolLog(path string, logger *slog.Logger, level slog.Level) (log.Logger, func(), error) {
	var (
		file    *log.FileLogger
		loggers []log.Logger
	)
	if path != "" {
		var err error
		file, err = log.NewFileLogger(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create protocol log: %w", err)
		}
		loggers = append(loggers, file)
		logger.Info("protocol capture enabled", "path", path)
	}
	if level <= slog.LevelDebug {
		loggers = append(loggers, log.NewSlogAdapter(logger))
	}

	closeFn := func() {
		if file == nil {
			return
		}
		if err := file.Close(); err != nil {
			logger.Warn("failed to close protocol log", "error", err)
			return
		}
		logger.Debug("protocol capture closed", "events", file.Written())
	}

	if len(loggers) == 0 {
		return log.NoopLogger{}, closeFn, nil
	}
	return log.NewMultiLogger(loggers...), closeFn, nil
}
