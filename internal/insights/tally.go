package insights

import "sort"

// tally counts string values and remembers the order they were first seen,
// which breaks ties between equally frequent values.
type tally struct {
	counts map[string]int
	order  []string
}

type tallyItem struct {
	Value string
	Count int
}

func newTally() *tally {
	return &tally{counts: make(map[string]int)}
}

func (t *tally) add(value string) {
	if value == "" {
		return
	}
	if _, seen := t.counts[value]; !seen {
		t.order = append(t.order, value)
	}
	t.counts[value]++
}

func (t *tally) len() int {
	return len(t.order)
}

func (t *tally) ranked() []tallyItem {
	items := make([]tallyItem, 0, len(t.order))
	for _, value := range t.order {
		items = append(items, tallyItem{Value: value, Count: t.counts[value]})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Count > items[j].Count
	})
	return items
}

// mode returns the most frequent value, or "" when nothing was added.
func (t *tally) mode() string {
	items := t.ranked()
	if len(items) == 0 {
		return ""
	}
	return items[0].Value
}

func (t *tally) top(limit int) []string {
	items := t.ranked()
	if limit >= 0 && len(items) > limit {
		items = items[:limit]
	}
	values := make([]string, 0, len(items))
	for _, item := range items {
		values = append(values, item.Value)
	}
	return values
}
