package engine

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialdash/internal/models"
)

func names(v RankedView) []string {
	out := make([]string, len(v))
	for i, e := range v {
		out[i] = e.Record.Name
	}
	return out
}

func TestTopNTiesKeepInputOrder(t *testing.T) {
	records := []models.EntityRecord{rec("A", 500), rec("B", 500), rec("C", 300)}

	got := TopN(records, MetricFollowers, 2)

	require.Len(t, got, 2)
	assert.Equal(t, RankedEntry{Rank: 1, Record: records[0], Value: 500}, got[0])
	assert.Equal(t, RankedEntry{Rank: 2, Record: records[1], Value: 500}, got[1])
}

func TestTopNLength(t *testing.T) {
	records := []models.EntityRecord{rec("A", 1), rec("B", 2), rec("C", 3)}

	tests := []struct {
		n    int
		want int
	}{
		{-1, 0},
		{0, 0},
		{1, 1},
		{3, 3},
		{10, 3},
	}
	for _, tt := range tests {
		assert.Len(t, TopN(records, MetricFollowers, tt.n), tt.want, "n=%d", tt.n)
	}

	assert.Empty(t, TopN(nil, MetricFollowers, 10))
	assert.Empty(t, TopN([]models.EntityRecord{}, MetricPostingFrequency, 10))
}

func TestTopNMetrics(t *testing.T) {
	records := []models.EntityRecord{
		{Name: "A", Followers: 100, AvgLikes: 10, AvgComments: 50, PostingFrequency: 4},
		{Name: "B", Followers: 300, AvgLikes: 40, AvgComments: 1, PostingFrequency: 12},
		{Name: "C", Followers: 200, AvgLikes: 45, AvgComments: 0, PostingFrequency: 8},
	}

	tests := []struct {
		metric MetricKey
		order  []string
		values []float64
	}{
		{MetricFollowers, []string{"B", "C", "A"}, []float64{300, 200, 100}},
		{MetricLikesComments, []string{"A", "C", "B"}, []float64{60, 45, 41}},
		{MetricPostingFrequency, []string{"B", "C", "A"}, []float64{12, 8, 4}},
	}

	for _, tt := range tests {
		t.Run(string(tt.metric), func(t *testing.T) {
			got := TopN(records, tt.metric, DefaultTopN)
			assert.Equal(t, tt.order, names(got))
			for i, e := range got {
				assert.Equal(t, i+1, e.Rank)
				assert.Equal(t, tt.values[i], e.Value)
			}
		})
	}
}

func TestTopNDoesNotMutateInput(t *testing.T) {
	records := []models.EntityRecord{rec("C", 1), rec("A", 3), rec("B", 2)}
	before := slices.Clone(records)

	first := TopN(records, MetricFollowers, 10)
	second := TopN(records, MetricFollowers, 10)

	assert.Equal(t, before, records)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"A", "B", "C"}, names(first))
}

func TestTopNStability(t *testing.T) {
	// many ties across two values; the input index must decide
	var records []models.EntityRecord
	for i := 0; i < 40; i++ {
		records = append(records, models.EntityRecord{
			Name:             string(rune('a'+i%26)) + string(rune('0'+i/26)),
			PostingFrequency: float64(i % 2),
		})
	}

	got := TopN(records, MetricPostingFrequency, len(records))
	require.Len(t, got, len(records))

	pos := make(map[string]int, len(records))
	for i, r := range records {
		pos[r.Name] = i
	}
	for i := 1; i < len(got); i++ {
		prev, cur := got[i-1], got[i]
		assert.GreaterOrEqual(t, prev.Value, cur.Value)
		if prev.Value == cur.Value {
			assert.Less(t, pos[prev.Record.Name], pos[cur.Record.Name])
		}
	}
}

func TestTopNNegativeValuesRankLast(t *testing.T) {
	records := []models.EntityRecord{rec("neg", -10), rec("zero", 0), rec("pos", 10)}

	got := TopN(records, MetricFollowers, 10)
	assert.Equal(t, []string{"pos", "zero", "neg"}, names(got))
}

func TestParseMetric(t *testing.T) {
	tests := map[string]MetricKey{
		"followers":         MetricFollowers,
		" Followers ":       MetricFollowers,
		"likes_comments":    MetricLikesComments,
		"engagement":        MetricLikesComments,
		"posting_frequency": MetricPostingFrequency,
		"posts":             MetricPostingFrequency,
	}
	for in, want := range tests {
		got, ok := ParseMetric(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := ParseMetric("views")
	assert.False(t, ok)
}

func TestUnknownMetricKeepsInputOrder(t *testing.T) {
	records := []models.EntityRecord{rec("A", 1), rec("B", 3), rec("C", 2)}

	got := TopN(records, MetricKey("views"), 10)
	assert.Equal(t, []string{"A", "B", "C"}, names(got))
}
