package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pagekeep/pagekeep-server/internal/domain"
)

func TestValidStatus(t *testing.T) {
	for _, s := range []domain.Status{"unread", "reading", "finished", "paused"} {
		require.True(t, domain.ValidStatus(s), "status %q", s)
	}
	for _, s := range []domain.Status{"", "abandoned", "Reading", "done"} {
		require.False(t, domain.ValidStatus(s), "status %q", s)
	}
}

func TestValidRating(t *testing.T) {
	for _, r := range []float64{0.5, 1, 2.5, 3.5, 5} {
		require.True(t, domain.ValidRating(r), "rating %v", r)
	}
	for _, r := range []float64{0, 0.4, 3.3, 5.5, -1, 4.75} {
		require.False(t, domain.ValidRating(r), "rating %v", r)
	}
}

func TestProgressPercent(t *testing.T) {
	require.Equal(t, 0, domain.ProgressPercent(50, 0))
	require.Equal(t, 0, domain.ProgressPercent(0, 200))
	require.Equal(t, 50, domain.ProgressPercent(100, 200))
	require.Equal(t, 75, domain.ProgressPercent(150, 200))
	require.Equal(t, 100, domain.ProgressPercent(200, 200))
	require.Equal(t, 100, domain.ProgressPercent(250, 200))
	// Rounds to nearest, not down.
	require.Equal(t, 33, domain.ProgressPercent(1, 3))
	require.Equal(t, 67, domain.ProgressPercent(2, 3))
}
