package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"fyne.io/fyne/v2/app"
	"github.com/carlmjohnson/versioninfo"
	"github.com/urfave/cli/v2"

	"github.com/YunKonstantin/timer-final/internal/config"
	"github.com/YunKonstantin/timer-final/internal/engine"
	"github.com/YunKonstantin/timer-final/internal/sound"
	"github.com/YunKonstantin/timer-final/internal/storage"
	"github.com/YunKonstantin/timer-final/internal/ui"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	app := cli.App{
		Name:    "timer",
		Usage:   "stopwatch and countdown timer",
		Version: versioninfo.Short(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path to the YAML config file (default: XDG config dir)",
				EnvVars: []string{"TIMER_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "path to the session history database (overrides config)",
			},
			&cli.BoolFlag{
				Name:  "mute",
				Usage: "do not play the completion sound",
			},
			&cli.BoolFlag{
				Name:  "no-history",
				Usage: "do not record sessions",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log verbosity (error, warn, info, debug)",
				Value:   "warn",
				EnvVars: []string{"TIMER_LOG_LEVEL"},
			},
		},
		Action: runApp,
	}
	return app.Run(args)
}

func runApp(cctx *cli.Context) error {
	logger := configLogger(cctx.String("log-level"), os.Stderr)

	configManager, err := loadConfig(cctx.String("config"))
	if err != nil {
		return err
	}
	cfg := configManager.GetConfig()
	logger.Debug("config loaded", "path", configManager.Path())

	deps := ui.Deps{
		Config: configManager,
		Logger: logger,
	}

	var cue engine.Cue = sound.Mute{}
	if cfg.Sound.Enabled && !cctx.Bool("mute") {
		cue = sound.NewPlayer(cfg.Sound, logger)
	}
	deps.Cue = cue

	if cfg.History.Enabled && !cctx.Bool("no-history") {
		path := cctx.String("db")
		if path == "" {
			if path, err = configManager.HistoryPath(); err != nil {
				return fmt.Errorf("resolve history path: %w", err)
			}
		}
		db, err := storage.NewDatabase(path)
		if err != nil {
			// The timers work without history.
			logger.Error("history disabled", "path", path, "err", err)
		} else {
			defer db.Close()
			deps.History = db
		}
	}

	myApp := app.NewWithID("com.github.yunkonstantin.timer-final")
	mainWindow := ui.NewMainWindow(myApp, deps)
	mainWindow.SetSize(float32(cfg.App.WindowWidth), float32(cfg.App.WindowHeight))
	mainWindow.Show()
	return nil
}

func loadConfig(path string) (*config.Manager, error) {
	if path != "" {
		return config.NewManagerAt(path)
	}
	return config.NewManager()
}

func configLogger(levelName string, writer io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(levelName) {
	case "error":
		level = slog.LevelError
	case "warn":
		level = slog.LevelWarn
	case "info":
		level = slog.LevelInfo
	case "debug":
		level = slog.LevelDebug
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}
