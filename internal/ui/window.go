package ui

import (
	"context"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"

	"github.com/YunKonstantin/timer-final/internal/clock"
	"github.com/YunKonstantin/timer-final/internal/config"
	"github.com/YunKonstantin/timer-final/internal/engine"
	"github.com/YunKonstantin/timer-final/internal/models"
)

// SessionSaver persists finished sessions; storage.Database implements it.
type SessionSaver interface {
	SaveSession(ctx context.Context, rec *models.SessionRecord) error
}

type History interface {
	HistoryStore
	SessionSaver
}

// Deps are the collaborators the main window wires together. History and
// Cue may be nil.
type Deps struct {
	Config  *config.Manager
	History History
	Cue     engine.Cue
	Clock   clock.Clock
	Logger  *slog.Logger
}

type MainWindow struct {
	window        fyne.Window
	configManager *config.Manager
	history       History
	logger        *slog.Logger

	stopwatch *engine.Stopwatch
	countdown *engine.Countdown

	stopwatchView *StopwatchView
	countdownView *CountdownView
	statsView     *StatsView
	tabs          *container.AppTabs
}

func NewMainWindow(app fyne.App, deps Deps) *MainWindow {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Clock == nil {
		deps.Clock = clock.NewReal()
	}
	cfg := deps.Config.GetConfig()

	w := &MainWindow{
		window:        app.NewWindow(cfg.App.Name),
		configManager: deps.Config,
		history:       deps.History,
		logger:        deps.Logger,
	}

	w.stopwatch = engine.NewStopwatch(engine.StopwatchConfig{
		Interval: cfg.Stopwatch.TickInterval,
		Initial:  cfg.Stopwatch.Initial,
		Clock:    deps.Clock,
		Logger:   deps.Logger,
	})
	w.countdown = engine.NewCountdown(engine.CountdownConfig{
		Interval: cfg.Countdown.TickInterval,
		Duration: cfg.Countdown.Default,
		Clock:    deps.Clock,
		Cue:      deps.Cue,
		Logger:   deps.Logger,
	})
	if w.history != nil {
		w.stopwatch.SetOnReset(w.record)
		w.countdown.SetOnFinish(w.record)
	}

	w.setup(cfg)
	return w
}

func (w *MainWindow) SetSize(width, height float32) {
	w.window.Resize(fyne.NewSize(width, height))
}

func (w *MainWindow) setup(cfg *config.Config) {
	w.stopwatchView = NewStopwatchView(cfg.Stopwatch.Title, w.stopwatch, cfg.Stopwatch.Initial)
	w.countdownView = NewCountdownView(w.countdown, w.logger)
	w.countdownView.SetOnStarted(w.rememberDuration)

	w.statsView = NewStatsView(w.history, w.logger)

	w.tabs = container.NewAppTabs(
		container.NewTabItem("Секундомер", w.stopwatchView.Container()),
		container.NewTabItem("Таймер", w.countdownView.Container()),
		container.NewTabItem("Статистика", w.statsView.Container()),
	)
	w.tabs.OnSelected = func(item *container.TabItem) {
		if item.Content == w.statsView.Container() {
			w.statsView.Refresh()
		}
	}

	w.window.SetContent(container.NewPadded(w.tabs))
	w.window.SetOnClosed(w.Close)
}

// Close stops both engines so no ticker outlives the window.
func (w *MainWindow) Close() {
	w.stopwatch.Close()
	w.countdown.Close()
}

func (w *MainWindow) Show() {
	w.window.ShowAndRun()
}

func (w *MainWindow) record(rec models.SessionRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := w.history.SaveSession(ctx, &rec); err != nil {
		w.logger.Error("save session", "kind", rec.Kind, "err", err)
		return
	}
	w.logger.Debug("session saved", "kind", rec.Kind, "id", rec.ID, "duration", rec.Duration)
}

func (w *MainWindow) rememberDuration(d models.Duration) {
	if d == w.configManager.GetConfig().Countdown.Default {
		return
	}
	if err := w.configManager.UpdateCountdownDefault(d); err != nil {
		w.logger.Warn("save default duration", "err", err)
	}
}
