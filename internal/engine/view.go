package engine

import "socialdash/internal/models"

// BuildView composes everything the presentation layer renders for the
// selection's current period: summary cards with the displayed delta, one
// ranking per chart metric and the full entity list in dataset order.
func BuildView(ds *Dataset, sel *Selection, n int) models.DashboardView {
	key := sel.Current()
	records := ds.Records(key)
	prior, _ := ds.PriorRecords(key)

	sum := ComputeSummary(records, prior)

	view := models.DashboardView{
		Period:    models.PeriodInfo{Key: string(key), Label: ds.Periods().Label(key)},
		UpdatedAt: ds.UpdatedAt,
		Summary:   SummaryView(key, sum, sel),
		Rankings:  make([]models.RankingView, 0, len(ChartMetrics)),
		Entities:  records,
	}
	if view.Entities == nil {
		view.Entities = []models.EntityRecord{}
	}
	for _, m := range ChartMetrics {
		view.Rankings = append(view.Rankings, RankingView(m, TopN(records, m, n)))
	}
	return view
}

// SummaryView converts sum into its wire form with the selection's delta policy applied.
func SummaryView(key PeriodKey, sum Summary, sel *Selection) models.SummaryView {
	return models.SummaryView{
		Period:            string(key),
		Empty:             sum.Empty,
		TotalFollowers:    sum.TotalFollowers,
		AvgEngagementRate: sum.AvgEngagementRate,
		AvgEngagementText: sum.EngagementRateText(),
		AvgLikes:          sum.AvgLikes,
		AvgLikesText:      sum.AvgLikesText(),
		TopEntity:         sum.TopEntity,
		FollowersDelta:    sel.DisplayedDelta(sum),
		HasPrior:          !sel.IsEarliest(),
	}
}

func RankingView(metric MetricKey, ranked RankedView) models.RankingView {
	items := make([]models.RankedItem, len(ranked))
	for i, e := range ranked {
		items[i] = models.RankedItem{Rank: e.Rank, Value: e.Value, Entity: e.Record}
	}
	return models.RankingView{Metric: string(metric), Items: items}
}

// SelectionView describes the ordering and where sel currently points.
func SelectionView(sel *Selection, applied bool) models.SelectionView {
	p := sel.Periods()
	keys := p.Keys()
	out := models.SelectionView{
		Current:  string(sel.Current()),
		Earliest: sel.IsEarliest(),
		Applied:  applied,
		Periods:  make([]models.PeriodInfo, len(keys)),
	}
	for i, k := range keys {
		out.Periods[i] = models.PeriodInfo{Key: string(k), Label: p.Label(k)}
	}
	return out
}
