package derive

import (
	"fmt"
	"math"

	"github.com/okian/pacetrend/internal/domain/model"
)

// HourStyle selects zero-padding of the hour field in FormatDuration.
type HourStyle int

// Hour styles.
const (
	HourUnpadded HourStyle = iota // H:MM:SS
	HourPadded                    // HH:MM:SS
)

const secondsPerHour = 3600

// FormatDuration renders minutes as H:MM:SS or HH:MM:SS.
// Zero, negative and non-finite input render as the empty string.
func FormatDuration(minutes float64, style HourStyle) string {
	if !(minutes > 0) || math.IsInf(minutes, 0) {
		return ""
	}
	total := int64(math.Round(minutes * secondsPerMinute))
	h := total / secondsPerHour
	m := (total % secondsPerHour) / secondsPerMinute
	s := total % secondsPerMinute
	if style == HourPadded {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// FormatPace renders a pace as M:SS/km.
// Undefined, zero and non-finite paces render as the empty string.
func FormatPace(p model.Pace) string {
	v, ok := p.Value()
	if !ok || !(v > 0) {
		return ""
	}
	total := int64(math.Round(v * secondsPerMinute))
	return fmt.Sprintf("%d:%02d/km", total/secondsPerMinute, total%secondsPerMinute)
}
