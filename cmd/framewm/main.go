package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/framewm/internal/config"
	"github.com/1broseidon/framewm/internal/ipc"
	"github.com/1broseidon/framewm/internal/logging"
	"github.com/1broseidon/framewm/internal/runtimepath"
	"github.com/1broseidon/framewm/internal/wm"
	"github.com/1broseidon/framewm/internal/x11"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: framewm [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run the framewm window manager on $DISPLAY (foreground).")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  --print-config      Print the effective configuration and exit")
	fmt.Fprintln(w, "  --no-ipc            Do not open the control socket")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintf(w, "  %-19s Terminal command for the spawn binding\n", config.EnvTerminal)
	fmt.Fprintf(w, "  %-19s Log level (debug, info, warn, error)\n", config.EnvLogLevel)
	fmt.Fprintf(w, "  %-19s Control socket path\n", runtimepath.EnvSocket)
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Use 'framewmctl' to query or stop a running instance.")
}

func run(args []string) int {
	fs := flag.NewFlagSet("framewm", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() { printUsage(os.Stderr) }
	printConfig := fs.Bool("print-config", false, "Print the effective configuration and exit")
	noIPC := fs.Bool("no-ipc", false, "Do not open the control socket")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "framewm takes no arguments")
		fmt.Fprintln(os.Stderr, "")
		printUsage(os.Stderr)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		return 1
	}

	if *printConfig {
		data, err := cfg.Marshal()
		if err != nil {
			log.Printf("Failed to encode configuration: %v", err)
			return 1
		}
		os.Stdout.Write(data)
		return 0
	}

	return runManager(cfg, !*noIPC)
}

func runManager(cfg *config.Config, withIPC bool) int {
	logCfg := cfg.GetLoggingConfig()
	logger, closer := logging.New(logging.Options{
		Level:     logCfg.Level,
		FilePath:  logCfg.File,
		MaxSizeMB: logCfg.MaxSizeMB,
		MaxFiles:  logCfg.MaxFiles,
	})
	defer closer.Close()

	keys, err := cfg.KeyTable()
	if err != nil {
		logger.Error("invalid key bindings", "error", err)
		return 1
	}

	var conn *x11.Connection
	open := func() (wm.Display, error) {
		c, err := x11.Open(logger)
		if err != nil {
			return nil, err
		}
		conn = c
		keys.SetIgnored(c.IgnoredMods())
		return c, nil
	}

	manager, status, err := wm.Start(open, wm.Options{
		Metrics: cfg.Metrics(),
		Limits:  cfg.Limits(),
		Colors: wm.Colors{
			Frame:  uint32(cfg.Theme.Frame),
			Title:  uint32(cfg.Theme.Title),
			Edge:   uint32(cfg.Theme.Edge),
			Corner: uint32(cfg.Theme.Corner),
		},
		Keys:     keys,
		Terminal: cfg.TerminalArgv(),
		Logger:   logger,
	})
	if conn != nil {
		defer conn.Close()
	}
	if status != wm.InitSuccess {
		logger.Error("failed to start window manager", "status", status, "error", err)
		return 1
	}

	if withIPC {
		socketPath, err := runtimepath.SocketPath()
		if err != nil {
			logger.Warn("control socket disabled", "error", err)
		} else {
			server := ipc.NewServer(socketPath, manager, conn, logger)
			if err := server.Start(); err != nil {
				logger.Warn("control socket disabled", "error", err)
			} else {
				defer server.Stop()
			}
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)
	go func() {
		sig, ok := <-sigCh
		if !ok {
			return
		}
		logger.Info("received signal, shutting down", "signal", sig.String())
		manager.RequestExit()
	}()

	logger.Info("framewm started")
	if err := manager.Run(); err != nil {
		if errors.Is(err, wm.ErrConnectionClosed) {
			logger.Info("display connection closed")
			return 0
		}
		logger.Error("event loop failed", "error", err)
		return 1
	}
	logger.Info("framewm stopped")
	return 0
}
