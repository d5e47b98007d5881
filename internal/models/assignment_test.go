package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAssignment_EffectiveAvailability(t *testing.T) {
	now := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)
	before := now.Add(-time.Hour)
	after := now.Add(time.Hour)

	tests := []struct {
		name       string
		assignment Assignment
		want       bool
	}{
		{
			name:       "available with no window",
			assignment: Assignment{IsAvailable: true},
			want:       true,
		},
		{
			name:       "flag off wins over an open window",
			assignment: Assignment{IsAvailable: false, OpenedAt: &before, ClosedAt: &after},
			want:       false,
		},
		{
			name:       "inside the window",
			assignment: Assignment{IsAvailable: true, OpenedAt: &before, ClosedAt: &after},
			want:       true,
		},
		{
			name:       "before opening",
			assignment: Assignment{IsAvailable: true, OpenedAt: &after},
			want:       false,
		},
		{
			name:       "after closing",
			assignment: Assignment{IsAvailable: true, ClosedAt: &before},
			want:       false,
		},
		{
			name:       "exactly at the opening bound",
			assignment: Assignment{IsAvailable: true, OpenedAt: &now},
			want:       true,
		},
		{
			name:       "exactly at the closing bound",
			assignment: Assignment{IsAvailable: true, ClosedAt: &now},
			want:       true,
		},
		{
			name:       "only opening bound, already passed",
			assignment: Assignment{IsAvailable: true, OpenedAt: &before},
			want:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.assignment.EffectiveAvailability(now))
		})
	}
}

// The window passing never rewrites the stored flag; only the computed result
// changes as time moves.
func TestAssignment_WindowPassingDoesNotMutateFlag(t *testing.T) {
	closed := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)
	a := Assignment{IsAvailable: true, ClosedAt: &closed}

	assert.True(t, a.EffectiveAvailability(closed.Add(-time.Minute)))
	assert.False(t, a.EffectiveAvailability(closed.Add(time.Minute)))
	assert.True(t, a.IsAvailable)
}
