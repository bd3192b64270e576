package timefmt

import (
	"fmt"
	"time"
)

// Countdown formats d as MM:SS, truncating to whole seconds.
// Minutes are not wrapped into hours: 90 minutes renders as "90:00".
func Countdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// Minutes formats a whole-minute interval with the short Turkish unit, e.g. "60 dk"
func Minutes(m int) string {
	return fmt.Sprintf("%d dk", m)
}

// Seconds returns the whole seconds left in d, rounding up so that a countdown
// never shows 0 while time remains
func Seconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}
