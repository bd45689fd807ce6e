package schedule

const (
	DefaultSlotWidth     = 80.0
	DefaultMinBlockWidth = 18.0
)

// Position maps a segment onto pixel space for absolute positioning inside
// a row. Negative durations collapse to zero width.
func Position(startMinutes, durationMinutes int, iv Interval, slotWidth float64) (left, width float64) {
	safeDuration := max(0, durationMinutes)
	perMinute := slotWidth / float64(iv.Minutes())

	left = float64(startMinutes) * perMinute
	width = float64(safeDuration) * perMinute
	return left, width
}

// ApplyMinWidth keeps very short blocks clickable. It is a presentation
// floor and is applied after Position, never inside it.
func ApplyMinWidth(width, floor float64) float64 {
	if width < floor {
		return floor
	}
	return width
}
