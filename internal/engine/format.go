package engine

import (
	"fmt"
	"time"
)

// FormatElapsed renders d as MM:SS.cc (minutes, seconds, hundredths).
// Minutes are not wrapped at 60.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	return fmt.Sprintf("%02d:%02d.%02d", ms/60000, (ms%60000)/1000, (ms%1000)/10)
}

// FormatRemaining renders whole seconds as M:SS.
func FormatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
