package engine

// PeriodKey identifies a reporting interval, e.g. "2025-10".
type PeriodKey string

// Periods is an ordered enumeration of period keys, oldest first.
// Predecessor lookup is positional so adding a month needs no new branches.
type Periods struct {
	keys   []PeriodKey
	labels map[PeriodKey]string
	index  map[PeriodKey]int
}

// NewPeriods builds the ordering from keys as given. Repeated keys keep their
// first position. labels may be nil.
func NewPeriods(keys []PeriodKey, labels map[PeriodKey]string) Periods {
	p := Periods{
		keys:   make([]PeriodKey, 0, len(keys)),
		labels: make(map[PeriodKey]string, len(keys)),
		index:  make(map[PeriodKey]int, len(keys)),
	}
	for _, k := range keys {
		if _, dup := p.index[k]; dup {
			continue
		}
		p.index[k] = len(p.keys)
		p.keys = append(p.keys, k)
		if l, ok := labels[k]; ok && l != "" {
			p.labels[k] = l
		}
	}
	return p
}

// Len is the number of periods.
func (p Periods) Len() int { return len(p.keys) }

// Keys returns a copy of the ordering.
func (p Periods) Keys() []PeriodKey {
	out := make([]PeriodKey, len(p.keys))
	copy(out, p.keys)
	return out
}

// Contains reports whether key is one of the periods.
func (p Periods) Contains(key PeriodKey) bool {
	_, ok := p.index[key]
	return ok
}

// Index returns the ordinal position of key, or -1.
func (p Periods) Index(key PeriodKey) int {
	if i, ok := p.index[key]; ok {
		return i
	}
	return -1
}

// Predecessor returns the period immediately before key.
func (p Periods) Predecessor(key PeriodKey) (PeriodKey, bool) {
	i := p.Index(key)
	if i <= 0 {
		return "", false
	}
	return p.keys[i-1], true
}

// Latest returns the most recent period.
func (p Periods) Latest() (PeriodKey, bool) {
	if len(p.keys) == 0 {
		return "", false
	}
	return p.keys[len(p.keys)-1], true
}

// Earliest returns the oldest period.
func (p Periods) Earliest() (PeriodKey, bool) {
	if len(p.keys) == 0 {
		return "", false
	}
	return p.keys[0], true
}

// Label falls back to the key itself.
func (p Periods) Label(key PeriodKey) string {
	if l, ok := p.labels[key]; ok {
		return l
	}
	return string(key)
}
