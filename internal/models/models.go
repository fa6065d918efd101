package models

// EntityRecord is one organization's social-media snapshot for a period.
type EntityRecord struct {
	Name             string  `json:"company_name"`
	Followers        int64   `json:"followers"`
	EngagementRate   float64 `json:"er_percent"`
	AvgLikes         float64 `json:"avg_likes"`
	AvgComments      float64 `json:"avg_comments"`
	PostingFrequency float64 `json:"posting_frequency"`
}

type PeriodInfo struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type SummaryView struct {
	Period            string        `json:"period"`
	Empty             bool          `json:"empty"`
	TotalFollowers    int64         `json:"total_followers"`
	AvgEngagementRate float64       `json:"avg_engagement_rate"`
	AvgEngagementText string        `json:"avg_engagement_rate_display"`
	AvgLikes          float64       `json:"avg_likes"`
	AvgLikesText      string        `json:"avg_likes_display"`
	TopEntity         *EntityRecord `json:"top_entity,omitempty"`
	FollowersDelta    int64         `json:"followers_delta"`
	HasPrior          bool          `json:"has_prior"`
}

type RankedItem struct {
	Rank   int          `json:"rank"`
	Value  float64      `json:"value"`
	Entity EntityRecord `json:"entity"`
}

type RankingView struct {
	Metric string       `json:"metric"`
	Items  []RankedItem `json:"items"`
}

// DashboardView is everything one render of the dashboard needs.
type DashboardView struct {
	Period    PeriodInfo     `json:"period"`
	UpdatedAt string         `json:"updated_at,omitempty"`
	Summary   SummaryView    `json:"summary"`
	Rankings  []RankingView  `json:"rankings"`
	Entities  []EntityRecord `json:"entities"`
}

type SelectionView struct {
	Current  string       `json:"current"`
	Earliest bool         `json:"earliest"`
	Applied  bool         `json:"applied"`
	Periods  []PeriodInfo `json:"periods"`
}
