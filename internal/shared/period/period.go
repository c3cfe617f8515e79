package period

import (
	"net/http"
	"strings"
	"time"

	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/query"
)

type Keyword string

const (
	Day     Keyword = "day"
	Week    Keyword = "week"
	Month   Keyword = "month"
	Quarter Keyword = "quarter"
	Year    Keyword = "year"
	Custom  Keyword = "custom"
)

// Bucket is the granularity used for trend keys.
type Bucket string

const (
	BucketDay   Bucket = "day"
	BucketMonth Bucket = "month"
)

var ErrInvalidPeriod = apperror.New(
	apperror.CodeInvalidInput,
	"Invalid period, expected one of day, week, month, quarter, year",
	http.StatusBadRequest,
)

var ErrInvalidDateRange = apperror.New(
	apperror.CodeInvalidInput,
	"startDate and endDate must both be valid dates (YYYY-MM-DD)",
	http.StatusBadRequest,
)

type Range struct {
	Period Keyword
	Start  time.Time
	End    time.Time
	Bucket Bucket
}

// Resolve turns a period keyword, or explicit start/end dates, into an
// inclusive range relative to now. Explicit dates win over the keyword.
// An empty keyword means month.
func Resolve(keyword, startDate, endDate string, now time.Time) (Range, error) {
	if strings.TrimSpace(startDate) != "" || strings.TrimSpace(endDate) != "" {
		start, ok1 := query.ParseDate(startDate)
		end, ok2 := query.ParseDate(endDate)
		if !ok1 || !ok2 || end.Before(start) {
			return Range{}, ErrInvalidDateRange
		}
		start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, now.Location())
		end = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, now.Location())

		bucket := BucketDay
		if end.Sub(start) > 92*24*time.Hour {
			bucket = BucketMonth
		}
		return Range{Period: Custom, Start: start, End: query.EndOfDay(end), Bucket: bucket}, nil
	}

	k := Keyword(strings.ToLower(strings.TrimSpace(keyword)))
	if k == "" {
		k = Month
	}

	today := query.StartOfDay(now)
	var start, end time.Time

	switch k {
	case Day:
		start, end = today, today
	case Week:
		// weeks start on Monday
		offset := (int(today.Weekday()) + 6) % 7
		start = today.AddDate(0, 0, -offset)
		end = start.AddDate(0, 0, 6)
	case Month:
		start = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		end = start.AddDate(0, 1, -1)
	case Quarter:
		firstMonth := time.Month(((int(today.Month())-1)/3)*3 + 1)
		start = time.Date(today.Year(), firstMonth, 1, 0, 0, 0, 0, today.Location())
		end = start.AddDate(0, 3, -1)
	case Year:
		start = time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, today.Location())
		end = time.Date(today.Year(), time.December, 31, 0, 0, 0, 0, today.Location())
	default:
		return Range{}, ErrInvalidPeriod
	}

	bucket := BucketDay
	if k == Year {
		bucket = BucketMonth
	}

	return Range{Period: k, Start: start, End: query.EndOfDay(end), Bucket: bucket}, nil
}

// Key formats t as a trend bucket key.
func (b Bucket) Key(t time.Time) string {
	if b == BucketMonth {
		return t.Format("2006-01")
	}
	return t.Format("2006-01-02")
}
