// Package format renders tracked durations for display.
//
// Layouts use the tokens HH, H, mm, m, ss and s for the hour, minute and
// second parts. Text inside square brackets is copied verbatim. Durations of
// a day or more are prefixed with the day count, for example
// "(+1 day) 02:00:00".
package format

import (
	"fmt"
	"strings"
	"time"
)

// DefaultLayout is used when a layout has no tokens.
const DefaultLayout = "HH:mm:ss"

const day = 24 * time.Hour

// Valid reports whether layout contains at least one duration token.
func Valid(layout string) bool {
	literal := false
	for _, r := range layout {
		switch {
		case r == '[':
			literal = true
		case r == ']':
			literal = false
		case !literal && (r == 'H' || r == 'm' || r == 's'):
			return true
		}
	}
	return false
}

// Duration formats d with layout.
func Duration(d time.Duration, layout string) string {
	if !Valid(layout) {
		layout = DefaultLayout
	}

	sign := "+"
	if d < 0 {
		sign = "-"
		d = -d
	}

	days := int(d / day)
	rendered := render(d%day, layout)
	if days == 0 {
		if sign == "-" && d > 0 {
			return "-" + rendered
		}
		return rendered
	}

	plural := "s"
	if days == 1 {
		plural = ""
	}
	return fmt.Sprintf("(%s%d day%s) %s", sign, days, plural, rendered)
}

func render(d time.Duration, layout string) string {
	parts := map[rune]int{
		'H': int(d / time.Hour),
		'm': int(d % time.Hour / time.Minute),
		's': int(d % time.Minute / time.Second),
	}

	var builder strings.Builder
	runes := []rune(layout)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '[' {
			end := i + 1
			for end < len(runes) && runes[end] != ']' {
				end++
			}
			builder.WriteString(string(runes[i+1 : end]))
			i = end
			continue
		}

		value, ok := parts[r]
		if !ok {
			builder.WriteRune(r)
			continue
		}
		width := 1
		for i+1 < len(runes) && runes[i+1] == r {
			width++
			i++
		}
		builder.WriteString(fmt.Sprintf("%0*d", width, value))
	}
	return builder.String()
}
