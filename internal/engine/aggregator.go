package engine

import (
	"fmt"

	"socialdash/internal/models"
)

// Summary holds the metric-card numbers for one period. Averages keep full
// precision; the Text helpers round for display.
type Summary struct {
	Empty             bool
	TotalFollowers    int64
	AvgEngagementRate float64
	AvgLikes          float64
	TopEntity         *models.EntityRecord
	FollowersDelta    int64
}

func (s Summary) EngagementRateText() string {
	return fmt.Sprintf("%.2f", s.AvgEngagementRate)
}

func (s Summary) AvgLikesText() string {
	return fmt.Sprintf("%.1f", s.AvgLikes)
}

// ComputeSummary derives the summary for records. prior is the previous
// period's list, nil when there is none; a missing or empty prior counts as a
// total of zero, so the delta then equals the full active total. Hiding that
// delta is the caller's decision (see Selection.DisplayedDelta).
//
// An empty records list yields the zero Summary with Empty set.
func ComputeSummary(records, prior []models.EntityRecord) Summary {
	if len(records) == 0 {
		return Summary{Empty: true}
	}

	var (
		s        Summary
		erSum    float64
		likesSum float64
		top      int
	)
	for i, r := range records {
		s.TotalFollowers += r.Followers
		erSum += r.EngagementRate
		likesSum += r.AvgLikes
		// strict > keeps the first maximal record
		if r.Followers > records[top].Followers {
			top = i
		}
	}

	n := float64(len(records))
	s.AvgEngagementRate = erSum / n
	s.AvgLikes = likesSum / n

	topRecord := records[top]
	s.TopEntity = &topRecord
	s.FollowersDelta = s.TotalFollowers - totalFollowers(prior)
	return s
}

func totalFollowers(records []models.EntityRecord) int64 {
	var total int64
	for _, r := range records {
		total += r.Followers
	}
	return total
}
