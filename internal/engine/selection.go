package engine

// SelectionState is the only thing the dashboard remembers between renders.
type SelectionState int

const (
	StateEarliest SelectionState = iota
	StateHasPrior
)

func (s SelectionState) String() string {
	if s == StateHasPrior {
		return "has-prior-period"
	}
	return "is-earliest-period"
}

// Selection owns the active period. It is not safe for concurrent use;
// callers that share one must serialize access.
type Selection struct {
	periods Periods
	current PeriodKey
}

// NewSelection starts at the most recent period.
func NewSelection(periods Periods) *Selection {
	latest, _ := periods.Latest()
	return &Selection{periods: periods, current: latest}
}

func (s *Selection) Current() PeriodKey { return s.current }

func (s *Selection) Periods() Periods { return s.periods }

// SelectPeriod switches to key when it is a known period and reports whether
// it did. Unknown keys leave the selection untouched.
func (s *Selection) SelectPeriod(key PeriodKey) bool {
	if !s.periods.Contains(key) {
		return false
	}
	s.current = key
	return true
}

// With returns a copy with key selected, leaving s as it is.
func (s *Selection) With(key PeriodKey) *Selection {
	c := *s
	c.SelectPeriod(key)
	return &c
}

// Step moves the selection by delta positions, clamped to the ordering.
func (s *Selection) Step(delta int) bool {
	n := s.periods.Len()
	if n == 0 {
		return false
	}
	i := s.periods.Index(s.current) + delta
	i = max(0, min(n-1, i))
	return s.SelectPeriod(s.periods.keys[i])
}

func (s *Selection) State() SelectionState {
	if _, ok := s.Prior(); ok {
		return StateHasPrior
	}
	return StateEarliest
}

func (s *Selection) IsEarliest() bool { return s.State() == StateEarliest }

func (s *Selection) Prior() (PeriodKey, bool) {
	return s.periods.Predecessor(s.current)
}

// DisplayedDelta is the follower delta to show for the current period: zero
// at the earliest period, where ComputeSummary subtracts nothing.
func (s *Selection) DisplayedDelta(sum Summary) int64 {
	if s.IsEarliest() {
		return 0
	}
	return sum.FollowersDelta
}
