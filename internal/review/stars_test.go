package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFillPercent(t *testing.T) {
	tests := []struct {
		name      string
		avg       float64
		starIndex int
		want      int
	}{
		{name: "zero average", avg: 0, starIndex: 0, want: 0},
		{name: "star below average is full", avg: 3.5, starIndex: 2, want: 100},
		{name: "star at fraction is partial", avg: 3.5, starIndex: 3, want: 50},
		{name: "star above average is empty", avg: 3.5, starIndex: 4, want: 0},
		{name: "exact integer average fills boundary star", avg: 4, starIndex: 3, want: 100},
		{name: "exact integer average empties next star", avg: 4, starIndex: 4, want: 0},
		{name: "rounding", avg: 2.345, starIndex: 2, want: 35},
		{name: "full five stars", avg: 5, starIndex: 4, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FillPercent(tt.avg, tt.starIndex))
		})
	}
}

func TestFillPercent_Monotonic(t *testing.T) {
	// For a fixed star index the fill never decreases as the average grows.
	for star := 0; star < 5; star++ {
		prev := 0
		for avg := 0.0; avg <= 5.0; avg += 0.05 {
			got := FillPercent(avg, star)
			assert.GreaterOrEqual(t, got, prev, "avg=%v star=%d", avg, star)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
			prev = got
		}
	}
}

func TestFillPercent_Bounds(t *testing.T) {
	for star := 0; star < 5; star++ {
		assert.Equal(t, 0, FillPercent(float64(star), star))
		assert.Equal(t, 0, FillPercent(float64(star)-0.7, star))
		assert.Equal(t, 100, FillPercent(float64(star)+1, star))
		assert.Equal(t, 100, FillPercent(float64(star)+1.9, star))
		assert.Equal(t, 50, FillPercent(float64(star)+0.5, star))
	}
}
