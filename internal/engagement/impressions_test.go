package engagement

import (
	"testing"
	"time"

	"github.com/arefin88/chirp/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04", value)
	require.NoError(t, err)
	return parsed.UTC()
}

func likeAt(t *testing.T, value string) models.LikeRef {
	return models.LikeRef{User: primitive.NewObjectID(), CreatedAt: day(t, value)}
}

func commentAt(t *testing.T, value string) models.Comment {
	return models.Comment{
		ID:        primitive.NewObjectID(),
		User:      primitive.NewObjectID(),
		Text:      "nice",
		CreatedAt: day(t, value),
	}
}

func TestCountImpressionsBucketsByEventDate(t *testing.T) {
	now := day(t, "2025-03-10 15:00")

	posts := []models.Post{
		{
			ID: primitive.NewObjectID(),
			Likes: []models.LikeRef{
				likeAt(t, "2025-03-10 08:00"),
				likeAt(t, "2025-03-10 23:59"),
				likeAt(t, "2025-03-08 12:00"),
			},
			Comments: []models.Comment{
				commentAt(t, "2025-03-04 00:00"),
			},
		},
		{
			ID:    primitive.NewObjectID(),
			Likes: []models.LikeRef{likeAt(t, "2025-03-06 10:30")},
		},
	}

	report := CountImpressions(posts, now)

	require.Len(t, report.ChartData, 7)
	assert.Equal(t, "2025-03-04", report.ChartData[0].Name)
	assert.Equal(t, "2025-03-10", report.ChartData[6].Name)

	byDate := map[string]int{}
	for _, p := range report.ChartData {
		byDate[p.Name] = p.Value
	}
	assert.Equal(t, 2, byDate["2025-03-10"])
	assert.Equal(t, 1, byDate["2025-03-08"])
	assert.Equal(t, 1, byDate["2025-03-06"])
	assert.Equal(t, 1, byDate["2025-03-04"])
	assert.Equal(t, 0, byDate["2025-03-05"])

	assert.Equal(t, 4, report.TotalLikes)
	assert.Equal(t, 1, report.TotalComments)
	assert.Equal(t, 5, report.TotalImpressions)
	assert.InDelta(t, 5.0/7.0, report.AverageImpressions, 1e-9)

	// With every event inside the window the buckets sum to the total.
	sum := 0
	for _, p := range report.ChartData {
		sum += p.Value
	}
	assert.Equal(t, report.TotalImpressions, sum)
}

func TestCountImpressionsNoPosts(t *testing.T) {
	now := day(t, "2025-03-10 15:00")

	report := CountImpressions(nil, now)

	require.Len(t, report.ChartData, 7)
	for _, p := range report.ChartData {
		assert.Equal(t, 0, p.Value)
	}
	assert.Equal(t, 0, report.TotalLikes)
	assert.Equal(t, 0, report.TotalComments)
	assert.Equal(t, 0, report.TotalImpressions)
	assert.Equal(t, 0.0, report.AverageImpressions)
}

func TestCountImpressionsDropsEventsOutsideWindow(t *testing.T) {
	now := day(t, "2025-03-10 15:00")

	// A like from before the window still counts toward the totals but
	// lands in no bucket.
	posts := []models.Post{
		{
			ID:    primitive.NewObjectID(),
			Likes: []models.LikeRef{likeAt(t, "2025-03-01 09:00")},
		},
	}

	report := CountImpressions(posts, now)

	for _, p := range report.ChartData {
		assert.Equal(t, 0, p.Value)
	}
	assert.Equal(t, 1, report.TotalLikes)
	assert.Equal(t, 1, report.TotalImpressions)
}

func TestCountImpressionsSkipsMissingTimestamps(t *testing.T) {
	now := day(t, "2025-03-10 15:00")

	posts := []models.Post{
		{
			ID:    primitive.NewObjectID(),
			Likes: []models.LikeRef{{User: primitive.NewObjectID()}}, // zero time
			Comments: []models.Comment{
				{ID: primitive.NewObjectID(), User: primitive.NewObjectID(), Text: "hey"},
			},
		},
	}

	report := CountImpressions(posts, now)

	for _, p := range report.ChartData {
		assert.Equal(t, 0, p.Value)
	}
	// Totals count the events, buckets do not.
	assert.Equal(t, 1, report.TotalLikes)
	assert.Equal(t, 1, report.TotalComments)
}

func TestWindowStart(t *testing.T) {
	now := day(t, "2025-03-10 15:00")
	assert.Equal(t, day(t, "2025-03-04 15:00"), WindowStart(now))
}
