package util

import (
	"fmt"
	"time"
)

// FormatBytes formats a byte count with binary KB/MB suffixes for readability.
// Examples: 500 -> "500 B", 1536 -> "1.5 KB", 27923742 -> "26.6 MB"
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	if n < unit*unit {
		return fmt.Sprintf("%.1f KB", float64(n)/unit)
	}
	if n < unit*unit*unit {
		return fmt.Sprintf("%.1f MB", float64(n)/(unit*unit))
	}
	return fmt.Sprintf("%.1f GB", float64(n)/(unit*unit*unit))
}

// FormatDuration rounds d for display.
// Examples: 850ms -> "850ms", 12.34s -> "12.3s"
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(100 * time.Millisecond).String()
}
