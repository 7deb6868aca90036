package exporter

import (
	"fmt"
	"time"
)

// formatFloat formats a float64 value for CSV output with exactly 2
// decimal places, so values like 13.4 appear as 13.40.
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatSmallFloat keeps more precision for values like CO2 readings
// that are typically well below 1.
func formatSmallFloat(f float64) string {
	return fmt.Sprintf("%.4f", f)
}

// formatInt formats an int value for CSV output
func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}

// formatTimestamp formats a timestamp for CSV output
func formatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}
