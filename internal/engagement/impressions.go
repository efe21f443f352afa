// Package engagement computes aggregate engagement figures over posts.
package engagement

import (
	"time"

	"github.com/arefin88/chirp/backend/internal/models"
)

// WindowDays is the size of the impression window, today included.
const WindowDays = 7

const dayKeyFormat = "2006-01-02"

// ChartPoint is one daily bucket of the impression chart.
type ChartPoint struct {
	Name  string `json:"name"` // UTC calendar date, YYYY-MM-DD
	Value int    `json:"value"`
}

// ImpressionReport is the aggregate returned by the impressions endpoint.
type ImpressionReport struct {
	ChartData          []ChartPoint `json:"chartData"`
	TotalLikes         int          `json:"totalLikes"`
	TotalComments      int          `json:"totalComments"`
	TotalImpressions   int          `json:"totalImpressions"`
	AverageImpressions float64      `json:"averageImpressions"`
}

// WindowStart returns the post-creation cutoff for the impression window:
// six days before now, so the window spans seven calendar days including
// today. Posts older than the cutoff are excluded entirely, even if they
// received likes or comments inside the window.
func WindowStart(now time.Time) time.Time {
	return now.AddDate(0, 0, -(WindowDays - 1))
}

// CountImpressions builds the daily like+comment histogram for the given
// posts. Buckets are keyed by the event's own UTC calendar date; events
// outside the window are dropped silently, events without a timestamp are
// skipped. Totals count every like and comment on the given posts, whether
// or not the event landed in a bucket. The fixed window size is the average
// divisor even when some buckets hold no data.
func CountImpressions(posts []models.Post, now time.Time) ImpressionReport {
	buckets := make(map[string]int, WindowDays)
	keys := make([]string, WindowDays)
	for i := 0; i < WindowDays; i++ {
		key := now.UTC().AddDate(0, 0, -(WindowDays - 1 - i)).Format(dayKeyFormat)
		keys[i] = key
		buckets[key] = 0
	}

	totalLikes := 0
	totalComments := 0
	for _, post := range posts {
		for _, like := range post.Likes {
			if like.CreatedAt.IsZero() {
				continue
			}
			key := like.CreatedAt.UTC().Format(dayKeyFormat)
			if _, ok := buckets[key]; ok {
				buckets[key]++
			}
		}
		for _, comment := range post.Comments {
			if comment.CreatedAt.IsZero() {
				continue
			}
			key := comment.CreatedAt.UTC().Format(dayKeyFormat)
			if _, ok := buckets[key]; ok {
				buckets[key]++
			}
		}
		totalLikes += len(post.Likes)
		totalComments += len(post.Comments)
	}

	chart := make([]ChartPoint, WindowDays)
	for i, key := range keys {
		chart[i] = ChartPoint{Name: key, Value: buckets[key]}
	}

	total := totalLikes + totalComments
	return ImpressionReport{
		ChartData:          chart,
		TotalLikes:         totalLikes,
		TotalComments:      totalComments,
		TotalImpressions:   total,
		AverageImpressions: float64(total) / WindowDays,
	}
}
