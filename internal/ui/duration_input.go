package ui

import (
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/YunKonstantin/timer-final/internal/models"
)

// DurationInput edits a countdown duration through two numeric entries and
// a slider. Each slider step is models.SliderStep seconds.
type DurationInput struct {
	minutes *widget.Entry
	seconds *widget.Entry
	slider  *widget.Slider

	container *fyne.Container

	value     models.Duration
	updating  bool // set while fields are synced programmatically
	onChanged func(models.Duration)
}

func NewDurationInput(initial models.Duration, onChanged func(models.Duration)) *DurationInput {
	d := &DurationInput{
		value:     initial.Clamp(),
		onChanged: onChanged,
	}

	d.minutes = widget.NewEntry()
	d.minutes.SetPlaceHolder("Минуты")
	d.minutes.OnChanged = d.onMinutesChanged

	d.seconds = widget.NewEntry()
	d.seconds.SetPlaceHolder("Секунды")
	d.seconds.OnChanged = d.onSecondsChanged

	d.slider = widget.NewSlider(0, models.SliderMax)
	d.slider.Step = 1
	d.slider.OnChanged = d.onSliderChanged

	d.container = container.NewVBox(
		container.NewGridWithColumns(2,
			container.NewBorder(nil, nil, widget.NewLabel("Минуты"), nil, d.minutes),
			container.NewBorder(nil, nil, widget.NewLabel("Секунды"), nil, d.seconds),
		),
		d.slider,
	)

	d.sync()
	return d
}

func (d *DurationInput) Container() fyne.CanvasObject {
	return d.container
}

func (d *DurationInput) Value() models.Duration {
	return d.value
}

// SetValue replaces the duration without notifying the listener.
func (d *DurationInput) SetValue(v models.Duration) {
	d.value = v.Clamp()
	d.sync()
}

func (d *DurationInput) Enable() {
	d.minutes.Enable()
	d.seconds.Enable()
	d.slider.Enable()
}

func (d *DurationInput) Disable() {
	d.minutes.Disable()
	d.seconds.Disable()
	d.slider.Disable()
}

func (d *DurationInput) Disabled() bool {
	return d.slider.Disabled()
}

func (d *DurationInput) onMinutesChanged(text string) {
	if d.updating {
		return
	}
	v := d.value
	v.Minutes = parseField(text)
	d.commit(v, text)
}

func (d *DurationInput) onSecondsChanged(text string) {
	if d.updating {
		return
	}
	v := d.value
	v.Seconds = parseField(text)
	d.commit(v, text)
}

func (d *DurationInput) onSliderChanged(pos float64) {
	if d.updating {
		return
	}
	d.value = models.DurationFromSlider(int(pos))
	d.sync()
	d.notify()
}

// commit stores an entry edit. Out of range values are clamped and the
// entries rewritten; an in-range edit keeps the user's text as typed.
func (d *DurationInput) commit(v models.Duration, typed string) {
	clamped := v.Clamp()
	d.value = clamped

	d.updating = true
	d.slider.SetValue(float64(clamped.SliderValue()))
	if clamped != v || !isNumber(typed) {
		d.minutes.SetText(formatField(clamped.Minutes))
		d.seconds.SetText(formatField(clamped.Seconds))
	}
	d.updating = false

	d.notify()
}

func (d *DurationInput) sync() {
	d.updating = true
	d.minutes.SetText(formatField(d.value.Minutes))
	d.seconds.SetText(formatField(d.value.Seconds))
	d.slider.SetValue(float64(d.value.SliderValue()))
	d.updating = false
}

func (d *DurationInput) notify() {
	if d.onChanged != nil {
		d.onChanged(d.value)
	}
}

// parseField reads an entry; anything that is not a number counts as zero.
func parseField(text string) int {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0
	}
	return n
}

func isNumber(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return true
	}
	_, err := strconv.Atoi(text)
	return err == nil
}

// Zero shows as an empty field so the placeholder is visible.
func formatField(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
