package ui

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/YunKonstantin/timer-final/internal/engine"
	"github.com/YunKonstantin/timer-final/internal/models"
)

var (
	timeColor  = color.NRGBA{R: 25, G: 25, B: 25, A: 255}
	titleColor = color.NRGBA{R: 40, G: 40, B: 40, A: 255}
)

// StopwatchView shows one stopwatch with start/pause and reset controls.
type StopwatchView struct {
	engine  *engine.Stopwatch
	initial time.Duration

	container   *fyne.Container
	titleLabel  *canvas.Text
	timeLabel   *canvas.Text
	startButton *widget.Button
	resetButton *widget.Button
}

func NewStopwatchView(title string, sw *engine.Stopwatch, initial time.Duration) *StopwatchView {
	v := &StopwatchView{
		engine:  sw,
		initial: initial,
	}

	v.titleLabel = canvas.NewText(title, titleColor)
	v.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	v.titleLabel.TextSize = 28
	v.titleLabel.Alignment = fyne.TextAlignCenter

	v.timeLabel = canvas.NewText(engine.FormatElapsed(initial), timeColor)
	v.timeLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	v.timeLabel.TextSize = 48
	v.timeLabel.Alignment = fyne.TextAlignCenter

	v.startButton = widget.NewButtonWithIcon("Запуск", theme.MediaPlayIcon(), sw.Toggle)
	v.startButton.Importance = widget.HighImportance

	v.resetButton = widget.NewButtonWithIcon("Сбросить", theme.MediaReplayIcon(), sw.Reset)

	v.container = container.NewVBox(
		container.NewPadded(v.titleLabel),
		container.NewPadded(v.timeLabel),
		container.NewCenter(container.NewHBox(v.startButton, v.resetButton)),
	)

	sw.SetOnTick(func(st models.StopwatchState) {
		fyne.Do(func() { v.render(st) })
	})
	v.render(sw.State())
	return v
}

func (v *StopwatchView) Container() fyne.CanvasObject {
	return v.container
}

func (v *StopwatchView) render(st models.StopwatchState) {
	v.timeLabel.Text = engine.FormatElapsed(st.Elapsed)
	v.timeLabel.Refresh()

	if st.Running {
		v.startButton.SetText("Пауза")
		v.startButton.SetIcon(theme.MediaPauseIcon())
		v.startButton.Importance = widget.WarningImportance
	} else {
		v.startButton.SetText("Запуск")
		v.startButton.SetIcon(theme.MediaPlayIcon())
		v.startButton.Importance = widget.HighImportance
	}
	v.startButton.Refresh()

	// Nothing to reset while showing the initial value.
	if !st.Running && st.Elapsed == v.initial {
		v.resetButton.Disable()
	} else {
		v.resetButton.Enable()
	}
}
