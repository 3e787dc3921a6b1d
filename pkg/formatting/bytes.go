// Package formatting converts byte sizes between counts and human-readable text.
package formatting

import (
	"fmt"
	"strconv"
	"strings"
)

// Sizes are base-1024. "MB" and "MiB" both mean 1<<20.
var multipliers = map[string]int64{
	"":   1,
	"B":  1,
	"K":  1 << 10,
	"KB": 1 << 10,
	"M":  1 << 20,
	"MB": 1 << 20,
	"G":  1 << 30,
	"GB": 1 << 30,
	"T":  1 << 40,
	"TB": 1 << 40,
}

var ladder = []string{"B", "KB", "MB", "GB", "TB"}

// ParseBytes converts strings such as "200MB", "1.5 GiB" or "4096" to a byte count.
func ParseBytes(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty byte size")
	}

	split := strings.IndexFunc(s, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.'
	})
	number, unit := s, ""
	if split >= 0 {
		number, unit = s[:split], strings.TrimSpace(s[split:])
	}

	unit = strings.Replace(strings.ToUpper(unit), "IB", "B", 1)
	mult, ok := multipliers[unit]
	if !ok {
		return 0, fmt.Errorf("unknown byte size unit in %q", s)
	}

	value, err := strconv.ParseFloat(number, 64)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("invalid byte size %q", s)
	}
	return int64(value * float64(mult)), nil
}

// FormatBytes renders n with the largest unit that keeps the value at or above one.
func FormatBytes(n int64) string {
	value := float64(n)
	i := 0
	for value >= 1024 && i < len(ladder)-1 {
		value /= 1024
		i++
	}
	if i == 0 {
		return fmt.Sprintf("%d B", n)
	}
	return strconv.FormatFloat(value, 'f', 1, 64) + " " + ladder[i]
}
