package conserje

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Clock renders a spreadsheet time value, stored as a fraction of a day,
// as "HH:MM". Values that already read like a time, are not numbers, or
// fall outside [0, 1) are returned unchanged.
func Clock(raw string) string {
	if looksLikeTime(raw) {
		return raw
	}
	num := strings.TrimSpace(raw)
	if isHex(num) {
		return raw
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil || !(f >= 0 && f < 1) {
		return raw
	}

	minutes := int(math.Floor(f*24*60 + 0.5))
	return fmt.Sprintf("%02d:%02d", minutes/60%24, minutes%60)
}

func looksLikeTime(s string) bool {
	s = strings.ToLower(s)
	for _, marker := range []string{"am", "pm", "h", ":"} {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}

// isHex reports whether s is written in the 0x float syntax.
func isHex(s string) bool {
	s = strings.ToLower(strings.TrimLeft(s, "+-"))
	return strings.HasPrefix(s, "0x")
}
