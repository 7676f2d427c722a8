package export

import "fmt"

// formatPercent returns a percentage string for page output.
func formatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}
