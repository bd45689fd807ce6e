package timezone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("Europe/London"))
	assert.True(t, IsValid("America/Sao_Paulo"))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("Mars/Olympus"))
}

func TestLocationFallsBackToDefault(t *testing.T) {
	assert.Equal(t, "Europe/London", Location("Mars/Olympus").String())
	assert.Equal(t, "Asia/Tokyo", Location("Asia/Tokyo").String())
}

func TestToday(t *testing.T) {
	assert.Len(t, Today("Europe/London"), len("2006-01-02"))
}
