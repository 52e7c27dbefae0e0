package ui

import (
	"errors"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/YunKonstantin/timer-final/internal/engine"
	"github.com/YunKonstantin/timer-final/internal/models"
)

const (
	zeroDurationMessage = "Установите время не менее 1 секунды"
	lockedMessage       = "Время можно изменить только после сброса"
	finishedMessage     = "Время вышло!"
)

// CountdownView is the "Таймер" tab: duration selector, remaining time,
// progress bar and controls.
type CountdownView struct {
	engine *engine.Countdown
	logger *slog.Logger

	container   *fyne.Container
	input       *DurationInput
	timeLabel   *canvas.Text
	progress    *widget.ProgressBar
	startButton *widget.Button
	resetButton *widget.Button
	message     *widget.Label
	finished    *widget.Label

	onStarted func(models.Duration)
}

func NewCountdownView(cd *engine.Countdown, logger *slog.Logger) *CountdownView {
	if logger == nil {
		logger = slog.Default()
	}
	v := &CountdownView{
		engine: cd,
		logger: logger.With("component", "countdown-view"),
	}

	st := cd.State()
	v.input = NewDurationInput(models.DurationFromSeconds(st.Total), v.configure)

	heading := widget.NewLabelWithStyle("ТАЙМЕР", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	v.timeLabel = canvas.NewText(engine.FormatRemaining(st.Remaining), timeColor)
	v.timeLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	v.timeLabel.TextSize = 56
	v.timeLabel.Alignment = fyne.TextAlignCenter

	v.progress = widget.NewProgressBar()
	v.progress.Max = 100
	v.progress.TextFormatter = func() string { return "" }

	v.startButton = widget.NewButtonWithIcon("Запуск", theme.MediaPlayIcon(), v.startOrPause)
	v.startButton.Importance = widget.SuccessImportance

	v.resetButton = widget.NewButtonWithIcon("Сброс", theme.MediaReplayIcon(), cd.Reset)

	v.message = widget.NewLabel("")
	v.message.Importance = widget.DangerImportance
	v.message.Hide()

	v.finished = widget.NewLabelWithStyle(finishedMessage, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	v.finished.Importance = widget.SuccessImportance
	v.finished.Hide()

	v.container = container.NewVBox(
		heading,
		widget.NewLabel("Установите время"),
		v.input.Container(),
		v.message,
		container.NewPadded(v.timeLabel),
		v.progress,
		container.NewCenter(container.NewHBox(v.startButton, v.resetButton)),
		v.finished,
	)

	cd.SetOnChange(func(st models.CountdownState) {
		fyne.Do(func() { v.render(st) })
	})
	v.render(st)
	return v
}

func (v *CountdownView) Container() fyne.CanvasObject {
	return v.container
}

// SetOnStarted registers a listener for runs started from Idle with the
// duration that was used.
func (v *CountdownView) SetOnStarted(fn func(models.Duration)) {
	v.onStarted = fn
}

func (v *CountdownView) configure(d models.Duration) {
	if err := v.engine.Configure(d); err != nil {
		v.showError(err)
		return
	}
	if d.TotalSeconds() > 0 {
		v.clearMessage()
	}
}

func (v *CountdownView) startOrPause() {
	v.clearMessage()

	wasIdle := v.engine.State().Idle()
	if err := v.engine.StartOrPause(); err != nil {
		v.showError(err)
		return
	}
	if wasIdle && v.onStarted != nil {
		v.onStarted(v.input.Value())
	}
}

func (v *CountdownView) showError(err error) {
	var text string
	switch {
	case errors.Is(err, models.ErrZeroDuration):
		text = zeroDurationMessage
	case errors.Is(err, models.ErrConfigureLocked):
		text = lockedMessage
	default:
		text = err.Error()
	}
	v.logger.Debug("validation", "err", err)
	v.message.SetText(text)
	v.message.Show()
}

func (v *CountdownView) clearMessage() {
	v.message.SetText("")
	v.message.Hide()
}

func (v *CountdownView) render(st models.CountdownState) {
	v.timeLabel.Text = engine.FormatRemaining(st.Remaining)
	v.timeLabel.Refresh()
	v.progress.SetValue(st.Progress)

	if st.Running() {
		v.startButton.SetText("Пауза")
		v.startButton.SetIcon(theme.MediaPauseIcon())
		v.startButton.Importance = widget.DangerImportance
	} else {
		v.startButton.SetText("Запуск")
		v.startButton.SetIcon(theme.MediaPlayIcon())
		v.startButton.Importance = widget.SuccessImportance
	}
	v.startButton.Refresh()

	// The selector only edits an idle countdown and does not follow the
	// remaining time while it runs.
	if st.Idle() {
		v.input.Enable()
	} else {
		v.input.Disable()
	}

	if st.Finished() {
		v.finished.Show()
	} else {
		v.finished.Hide()
	}
}
