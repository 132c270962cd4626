package model_test

import (
	"testing"
	"time"

	"campusroom/internal/domains/report/model"
	"campusroom/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackRank(t *testing.T) {
	assert.Equal(t, 1, model.FallbackRank(model.CategoryProjector))
	assert.Equal(t, 4, model.FallbackRank(model.CategoryAirConditioning))
	assert.Equal(t, 5, model.FallbackRank("plumbing"))
}

func TestBucket(t *testing.T) {
	jerusalem, err := timezone.Load("Asia/Jerusalem")
	require.NoError(t, err)

	tests := []struct {
		name    string
		at      time.Time
		minutes int
		want    time.Time
	}{
		{
			name:    "winter offset is two hours",
			at:      time.Date(2024, 1, 10, 8, 45, 0, 0, time.UTC),
			minutes: 60,
			want:    time.Date(2024, 1, 10, 10, 0, 0, 0, jerusalem),
		},
		{
			name:    "summer offset is three hours",
			at:      time.Date(2024, 7, 10, 8, 45, 0, 0, time.UTC),
			minutes: 60,
			want:    time.Date(2024, 7, 10, 11, 0, 0, 0, jerusalem),
		},
		{
			name:    "half hour buckets",
			at:      time.Date(2024, 1, 10, 8, 45, 0, 0, time.UTC),
			minutes: 30,
			want:    time.Date(2024, 1, 10, 10, 30, 0, 0, jerusalem),
		},
		{
			name:    "local midnight crosses the utc date",
			at:      time.Date(2024, 1, 10, 22, 15, 0, 0, time.UTC),
			minutes: 60,
			want:    time.Date(2024, 1, 11, 0, 0, 0, 0, jerusalem),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := model.Bucket(tt.at, jerusalem, tt.minutes)

			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
		})
	}
}
