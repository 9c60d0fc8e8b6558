package playback

import (
	"fmt"
	"time"
)

// FormatClock renders a position as m:ss, or h:mm:ss from one hour up.
// Sub-second remainders are dropped; negative values render as 0:00.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
