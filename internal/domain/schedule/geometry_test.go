package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPosition(t *testing.T) {
	tests := []struct {
		name      string
		start     int
		duration  int
		iv        Interval
		wantLeft  float64
		wantWidth float64
	}{
		{name: "hourly at 9", start: 540, duration: 60, iv: Interval60, wantLeft: 720, wantWidth: 80},
		{name: "half hour at 9", start: 540, duration: 60, iv: Interval30, wantLeft: 1440, wantWidth: 160},
		{name: "quarter hour", start: 0, duration: 15, iv: Interval60, wantLeft: 0, wantWidth: 20},
		{name: "negative duration", start: 600, duration: -30, iv: Interval60, wantLeft: 800, wantWidth: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			left, width := Position(tt.start, tt.duration, tt.iv, DefaultSlotWidth)
			assert.InDelta(t, tt.wantLeft, left, 1e-9)
			assert.InDelta(t, tt.wantWidth, width, 1e-9)
		})
	}
}

func TestApplyMinWidth(t *testing.T) {
	assert.Equal(t, DefaultMinBlockWidth, ApplyMinWidth(0, DefaultMinBlockWidth))
	assert.Equal(t, DefaultMinBlockWidth, ApplyMinWidth(6.6, DefaultMinBlockWidth))
	assert.Equal(t, 40.0, ApplyMinWidth(40, DefaultMinBlockWidth))
}
