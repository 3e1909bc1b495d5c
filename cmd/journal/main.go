// Command journal is a local trading journal: trades, wallet and objectives.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"trading-journal/internal/cli"
	"trading-journal/internal/config"
	"trading-journal/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load(configDirFromArgs(os.Args[1:]))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger := logging.NewLoggerWithConfig(logging.LogConfig{
		Level:      cfg.Log.Level,
		Console:    cfg.Log.Console,
		File:       cfg.Log.File,
		FilePath:   cfg.Log.FilePath,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		NoColor:    !cfg.Display.ColorEnabled,
	})
	if cfg.TemplatePath != "" {
		logger.Info().Str("path", cfg.TemplatePath).Msg("Created default configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := cli.NewRootCmd(cfg, logger)
	start := time.Now()
	err = rootCmd.ExecuteContext(ctx)
	logging.LogCommand(logger, commandName(os.Args[1:]), time.Since(start), err)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// configDirFromArgs finds --config before cobra parses the flags, so the
// logger is built from the right file.
func configDirFromArgs(args []string) string {
	for i, a := range args {
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
		if v, ok := strings.CutPrefix(a, "--config="); ok {
			return v
		}
	}
	return ""
}

func commandName(args []string) string {
	for i := 0; i < len(args); i++ {
		switch a := args[i]; {
		case a == "--config":
			i++
		case !strings.HasPrefix(a, "-"):
			return a
		}
	}
	return "journal"
}
