package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "00:00", want: 0},
		{in: "09:15", want: 555},
		{in: "23:59", want: 1439},
		{in: "22:00:00", want: 1320},
		{in: "07:30:45", want: 450},
		{in: "9:00", wantErr: true},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "", wantErr: true},
		{in: "ab:cd", wantErr: true},
		{in: "09:00xyz", wantErr: true},
		{in: "09:00:99", wantErr: true},
		{in: "09:00-00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidClock)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "09:05", FormatClock(545))
	assert.Equal(t, "23:59", FormatClock(MinutesPerDay))
	assert.Equal(t, "00:00", FormatClock(-30))
}

func TestPreviousDay(t *testing.T) {
	got, err := PreviousDay("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", got)

	got, err = PreviousDay("2025-01-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-12-31", got)

	_, err = PreviousDay("01/01/2025")
	assert.ErrorIs(t, err, ErrInvalidDate)
}
