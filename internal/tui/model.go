// Package tui is a terminal consumer of the dashboard views: arrow keys move
// the period selection, tab switches the ranked chart, enter "clicks" a row.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"socialdash/internal/engine"
	"socialdash/internal/models"
)

var (
	accentColor = lipgloss.AdaptiveColor{Light: "#8134AF", Dark: "#DD2A7B"}
	mutedColor  = lipgloss.AdaptiveColor{Light: "#555", Dark: "#94a3b8"}

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	mutedStyle    = lipgloss.NewStyle().Foreground(mutedColor)
	selectedStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	cardStyle     = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1)
)

var metricTitles = map[engine.MetricKey]string{
	engine.MetricFollowers:        "Top by followers",
	engine.MetricLikesComments:    "Top by avg likes + comments",
	engine.MetricPostingFrequency: "Top by posts per month",
}

// ClickFunc receives the record behind the highlighted row, unchanged.
type ClickFunc func(period engine.PeriodKey, record models.EntityRecord)

type Model struct {
	data    *engine.Dataset
	sel     *engine.Selection
	topN    int
	onClick ClickFunc

	metric int
	cursor int
	view   models.DashboardView

	clicked *models.EntityRecord
}

func New(data *engine.Dataset, topN int, onClick ClickFunc) *Model {
	m := &Model{
		data:    data,
		sel:     engine.NewSelection(data.Periods()),
		topN:    topN,
		onClick: onClick,
	}
	m.refresh()
	return m
}

// refresh recomputes the whole view for the current selection.
func (m *Model) refresh() {
	m.view = engine.BuildView(m.data, m.sel, m.topN)
	if n := len(m.ranking().Items); m.cursor >= n {
		m.cursor = max(0, n-1)
	}
}

func (m *Model) ranking() models.RankingView {
	return m.view.Rankings[m.metric]
}

func (m *Model) Selection() *engine.Selection { return m.sel }

func (m *Model) Metric() engine.MetricKey { return engine.ChartMetrics[m.metric] }

func (m *Model) Clicked() *models.EntityRecord { return m.clicked }

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left", "h":
		if m.sel.Step(-1) {
			m.clicked = nil
			m.refresh()
		}
	case "right", "l":
		if m.sel.Step(1) {
			m.clicked = nil
			m.refresh()
		}
	case "tab":
		m.metric = (m.metric + 1) % len(engine.ChartMetrics)
		m.cursor = 0
		m.refresh()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.ranking().Items)-1 {
			m.cursor++
		}
	case "enter":
		items := m.ranking().Items
		if len(items) == 0 {
			break
		}
		record := items[m.cursor].Entity
		m.clicked = &record
		if m.onClick != nil {
			m.onClick(m.sel.Current(), record)
		}
	}
	return m, nil
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Instagram performance · " + m.view.Period.Label))
	if m.view.UpdatedAt != "" {
		b.WriteString(mutedStyle.Render("  updated " + m.view.UpdatedAt))
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderCards())
	b.WriteString("\n\n")
	b.WriteString(m.renderRanking())

	if m.clicked != nil {
		c := m.clicked
		b.WriteString("\n")
		b.WriteString(cardStyle.Render(fmt.Sprintf(
			"%s\nfollowers %d · ER %.2f%% · likes %.1f · comments %.1f · posts %.1f",
			c.Name, c.Followers, c.EngagementRate, c.AvgLikes, c.AvgComments, c.PostingFrequency)))
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("←/→ period · tab chart · ↑/↓ select · enter details · q quit"))
	return b.String()
}

func (m *Model) renderCards() string {
	s := m.view.Summary
	if s.Empty {
		return cardStyle.Render("No data for this period")
	}

	delta := "n/a"
	if s.HasPrior {
		delta = fmt.Sprintf("%+d", s.FollowersDelta)
	}
	top := "-"
	if s.TopEntity != nil {
		top = fmt.Sprintf("%s (%d)", s.TopEntity.Name, s.TopEntity.Followers)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		cardStyle.Render(fmt.Sprintf("Total followers\n%d (%s)", s.TotalFollowers, delta)),
		cardStyle.Render("Avg engagement\n"+s.AvgEngagementText+"%"),
		cardStyle.Render("Avg likes\n"+s.AvgLikesText),
		cardStyle.Render("Most active\n"+top),
	)
}

func (m *Model) renderRanking() string {
	r := m.ranking()
	var b strings.Builder
	b.WriteString(titleStyle.Render(metricTitles[engine.MetricKey(r.Metric)]))
	b.WriteString("\n")
	if len(r.Items) == 0 {
		b.WriteString(mutedStyle.Render("  nothing to rank"))
		return b.String()
	}
	for i, it := range r.Items {
		line := fmt.Sprintf("%2d. %-24s %12.1f", it.Rank, it.Entity.Name, it.Value)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}
