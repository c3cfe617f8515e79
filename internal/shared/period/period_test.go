package period_test

import (
	"testing"
	"time"

	"go-ems/internal/shared/period"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday
var now = time.Date(2025, time.May, 14, 10, 30, 0, 0, time.UTC)

func TestResolve(t *testing.T) {
	cases := []struct {
		keyword string
		start   string
		end     string
		bucket  period.Bucket
	}{
		{"day", "2025-05-14", "2025-05-14", period.BucketDay},
		{"week", "2025-05-12", "2025-05-18", period.BucketDay},
		{"", "2025-05-01", "2025-05-31", period.BucketDay},
		{"MONTH", "2025-05-01", "2025-05-31", period.BucketDay},
		{"quarter", "2025-04-01", "2025-06-30", period.BucketDay},
		{"year", "2025-01-01", "2025-12-31", period.BucketMonth},
	}

	for _, tc := range cases {
		t.Run("keyword "+tc.keyword, func(t *testing.T) {
			r, err := period.Resolve(tc.keyword, "", "", now)
			require.NoError(t, err)
			assert.Equal(t, tc.start, r.Start.Format("2006-01-02"))
			assert.Equal(t, tc.end, r.End.Format("2006-01-02"))
			assert.Equal(t, 23, r.End.Hour())
			assert.Equal(t, tc.bucket, r.Bucket)
		})
	}

	t.Run("explicit dates override keyword", func(t *testing.T) {
		r, err := period.Resolve("year", "2025-03-01", "2025-03-10", now)
		require.NoError(t, err)
		assert.Equal(t, period.Custom, r.Period)
		assert.Equal(t, "2025-03-01", r.Start.Format("2006-01-02"))
		assert.Equal(t, "2025-03-10", r.End.Format("2006-01-02"))
	})

	t.Run("half an explicit range is rejected", func(t *testing.T) {
		_, err := period.Resolve("", "2025-03-01", "", now)
		assert.ErrorIs(t, err, period.ErrInvalidDateRange)
	})

	t.Run("unknown keyword", func(t *testing.T) {
		_, err := period.Resolve("fortnight", "", "", now)
		assert.ErrorIs(t, err, period.ErrInvalidPeriod)
	})

	t.Run("monday stays in its own week", func(t *testing.T) {
		monday := time.Date(2025, time.May, 12, 8, 0, 0, 0, time.UTC)
		r, err := period.Resolve("week", "", "", monday)
		require.NoError(t, err)
		assert.Equal(t, "2025-05-12", r.Start.Format("2006-01-02"))
	})
}

func TestBucketKey(t *testing.T) {
	assert.Equal(t, "2025-05-14", period.BucketDay.Key(now))
	assert.Equal(t, "2025-05", period.BucketMonth.Key(now))
}
