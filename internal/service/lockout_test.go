package service

import (
	"testing"
	"time"
)

func TestBackoffDuration(t *testing.T) {
	const (
		threshold = 5
		base      = time.Minute
		limit     = 15 * time.Minute
	)

	tests := []struct {
		name     string
		attempts int
		want     time.Duration
	}{
		{"below threshold", 4, 0},
		{"at threshold", 5, time.Minute},
		{"one past", 6, 2 * time.Minute},
		{"two past", 7, 4 * time.Minute},
		{"three past", 8, 8 * time.Minute},
		{"capped", 9, limit},
		{"far past stays capped", 50, limit},
		{"absurdly far past", 1 << 30, limit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := backoffDuration(tt.attempts, threshold, base, limit); got != tt.want {
				t.Errorf("backoffDuration(%d) = %v, want %v", tt.attempts, got, tt.want)
			}
		})
	}
}
