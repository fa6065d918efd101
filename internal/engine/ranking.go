package engine

import (
	"cmp"
	"slices"
	"strings"

	"socialdash/internal/models"
)

// DefaultTopN is how many entities each dashboard chart shows.
const DefaultTopN = 10

// MetricKey selects the value a ranking sorts by.
type MetricKey string

const (
	MetricFollowers        MetricKey = "followers"
	MetricLikesComments    MetricKey = "likes_comments"
	MetricPostingFrequency MetricKey = "posting_frequency"
)

// ChartMetrics lists the metrics in the order the dashboard charts them.
var ChartMetrics = []MetricKey{MetricFollowers, MetricLikesComments, MetricPostingFrequency}

// ParseMetric accepts the canonical key and a few aliases.
func ParseMetric(s string) (MetricKey, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "followers":
		return MetricFollowers, true
	case "likes_comments", "engagement", "avg_likes+avg_comments":
		return MetricLikesComments, true
	case "posting_frequency", "posts":
		return MetricPostingFrequency, true
	}
	return "", false
}

// Value extracts the metric from r. Unknown metrics read as 0.
func (m MetricKey) Value(r models.EntityRecord) float64 {
	switch m {
	case MetricFollowers:
		return float64(r.Followers)
	case MetricLikesComments:
		return r.AvgLikes + r.AvgComments
	case MetricPostingFrequency:
		return r.PostingFrequency
	}
	return 0
}

// RankedEntry is one chart row; Rank starts at 1.
type RankedEntry struct {
	Rank   int
	Record models.EntityRecord
	Value  float64
}

// RankedView is a ranking ordered by descending Value.
type RankedView []RankedEntry

// TopN ranks records by metric, highest first, and keeps the first n.
// Ties keep their input order. records is not modified.
func TopN(records []models.EntityRecord, metric MetricKey, n int) RankedView {
	if n <= 0 || len(records) == 0 {
		return RankedView{}
	}

	ranked := make(RankedView, len(records))
	for i, r := range records {
		ranked[i] = RankedEntry{Record: r, Value: metric.Value(r)}
	}
	slices.SortStableFunc(ranked, func(a, b RankedEntry) int {
		return cmp.Compare(b.Value, a.Value)
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}
