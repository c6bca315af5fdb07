package format

import (
	"fmt"
	"time"
)

// Score formats a metric in [0,1] with three decimals.
func Score(v float64) string {
	return fmt.Sprintf("%.3f", v)
}

// MeanStd formats "mean (std)", the way repeated-trial results are reported.
func MeanStd(mean, std float64) string {
	return fmt.Sprintf("%.3f (%.3f)", mean, std)
}

// Duration formats a duration as "Xm Ys", "Ys" or "Nms".
func Duration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	s := int(d.Seconds())
	if s >= 60 {
		return fmt.Sprintf("%dm %ds", s/60, s%60)
	}
	return fmt.Sprintf("%ds", s)
}

// Truncate shortens s to maxLen characters, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
