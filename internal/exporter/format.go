package exporter

import (
	"fmt"
	"strconv"
)

// formatMoney renders an optional amount with two decimal places, the
// blank string standing in for "not parsed".
func formatMoney(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *v)
}

func formatCount(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func formatPercent(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *v)
}

// formatAttendance renders the tri-state attendance value: blank for
// unknown, 0 for absent, 1 for present.
func formatAttendance(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
