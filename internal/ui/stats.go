package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/YunKonstantin/timer-final/internal/engine"
	"github.com/YunKonstantin/timer-final/internal/models"
)

// HistoryStore is the part of storage.Database the stats view reads.
type HistoryStore interface {
	SessionStats(ctx context.Context, kind models.SessionKind, from, to time.Time) (*models.SessionStats, error)
	RecentSessions(ctx context.Context, kind models.SessionKind, from, to time.Time, limit int) ([]*models.SessionRecord, error)
}

const (
	rangeToday = "Сегодня"
	rangeWeek  = "Неделя"
	rangeMonth = "Месяц"
	rangeAll   = "Всё время"

	recentLimit = 5
)

type StatsView struct {
	container      *fyne.Container
	store          HistoryStore
	logger         *slog.Logger
	now            func() time.Time
	dateRange      *widget.Select
	stopwatchStats *widget.Label
	countdownStats *widget.Label
	refreshBtn     *widget.Button
}

func NewStatsView(store HistoryStore, logger *slog.Logger) *StatsView {
	if logger == nil {
		logger = slog.Default()
	}
	sv := &StatsView{
		store:          store,
		logger:         logger.With("component", "stats-view"),
		now:            time.Now,
		stopwatchStats: widget.NewLabel(""),
		countdownStats: widget.NewLabel(""),
	}
	sv.setup()
	return sv
}

func (sv *StatsView) setup() {
	title := widget.NewLabelWithStyle("Статистика", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	if sv.store == nil {
		sv.container = container.NewVBox(
			title,
			widget.NewLabel("История отключена в настройках"),
		)
		return
	}

	sv.refreshBtn = widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), sv.Refresh)

	sv.dateRange = widget.NewSelect(
		[]string{rangeToday, rangeWeek, rangeMonth, rangeAll},
		func(selected string) {
			sv.updateStats(selected)
		},
	)

	toolbar := container.NewHBox(
		widget.NewLabel("Период:"),
		sv.dateRange,
		sv.refreshBtn,
	)

	statsContainer := container.NewGridWithColumns(2,
		container.NewVBox(
			widget.NewLabelWithStyle("Секундомер", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
			sv.stopwatchStats,
		),
		container.NewVBox(
			widget.NewLabelWithStyle("Таймер", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
			sv.countdownStats,
		),
	)

	sv.container = container.NewVBox(
		title,
		toolbar,
		statsContainer,
	)

	sv.dateRange.SetSelected(rangeToday)
}

// Refresh reloads the currently selected range.
func (sv *StatsView) Refresh() {
	if sv.dateRange == nil {
		return
	}
	if selected := sv.dateRange.Selected; selected != "" {
		sv.updateStats(selected)
	}
}

func (sv *StatsView) updateStats(timeRange string) {
	now := sv.now()
	from := rangeStart(timeRange, now)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	sv.stopwatchStats.SetText(sv.describe(ctx, models.KindStopwatch, from, now))
	sv.countdownStats.SetText(sv.describe(ctx, models.KindCountdown, from, now))
}

func (sv *StatsView) describe(ctx context.Context, kind models.SessionKind, from, to time.Time) string {
	stats, err := sv.store.SessionStats(ctx, kind, from, to)
	if err != nil {
		sv.logger.Error("load stats", "kind", kind, "err", err)
		return "Не удалось загрузить статистику"
	}
	recent, err := sv.store.RecentSessions(ctx, kind, from, to, recentLimit)
	if err != nil {
		sv.logger.Error("load recent sessions", "kind", kind, "err", err)
		recent = nil
	}
	return formatStats(stats, recent)
}

func formatStats(stats *models.SessionStats, recent []*models.SessionRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Сеансов: %d\n", stats.Sessions)
	fmt.Fprintf(&b, "Всего: %s\n", engine.FormatElapsed(stats.Total))
	fmt.Fprintf(&b, "В среднем: %s\n", engine.FormatElapsed(stats.Average))
	fmt.Fprintf(&b, "Самый долгий: %s", engine.FormatElapsed(stats.Longest))

	if len(recent) > 0 {
		b.WriteString("\n\nПоследние:")
		for _, r := range recent {
			fmt.Fprintf(&b, "\n%s  %s", r.StartedAt.Local().Format("02.01 15:04"), engine.FormatElapsed(r.Duration))
		}
	}
	return b.String()
}

// rangeStart returns the lower bound for a range option. The zero time
// means no bound.
func rangeStart(timeRange string, now time.Time) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch timeRange {
	case rangeToday:
		return midnight
	case rangeWeek:
		// Weeks start on Monday.
		offset := (int(now.Weekday()) + 6) % 7
		return midnight.AddDate(0, 0, -offset)
	case rangeMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	default:
		return time.Time{}
	}
}

func (sv *StatsView) Container() fyne.CanvasObject {
	return sv.container
}
