package report

import "sort"

// Thresholds control the score cutoffs for the two report buckets. They come
// from configuration, with these defaults.
type Thresholds struct {
	MinScore        int `mapstructure:"min-score"`
	MonitorMinScore int `mapstructure:"monitor-min-score"`
	MaxMonitorShown int `mapstructure:"max-monitor-shown"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		MinScore:        5,
		MonitorMinScore: 6,
		MaxMonitorShown: 5,
	}
}

// CategoryGroup is one category's qualified items in rank order, with its
// net-profit subtotal.
type CategoryGroup struct {
	Name      string
	Items     []*Item
	NetProfit float64
}

// Buckets is the partitioned view of one track's merged items.
type Buckets struct {
	// Qualified holds items with no past-performance requirement scoring at
	// or above MinScore, descending by score.
	Qualified    []*Item
	Groups       []CategoryGroup
	QualifiedNet float64

	// Monitor holds items that require past performance and score at or
	// above MonitorMinScore, descending. Shown is the display-capped prefix;
	// Overflow is how many were cut.
	Monitor  []*Item
	Shown    []*Item
	Overflow int
}

// Partition splits merged items into the qualified and monitor buckets.
// Sorting is stable so equal scores keep their input order, and the
// category grouping follows displayOrder with unlisted categories appended
// in first-seen order.
func Partition(items []*Item, displayOrder []string, th Thresholds) Buckets {
	var b Buckets

	for _, item := range items {
		switch {
		case !item.RequiresPastPerformance() && item.Score() >= th.MinScore:
			b.Qualified = append(b.Qualified, item)
		case item.RequiresPastPerformance() && item.Score() >= th.MonitorMinScore:
			b.Monitor = append(b.Monitor, item)
		}
	}

	sort.SliceStable(b.Qualified, func(i, j int) bool {
		return b.Qualified[i].Score() > b.Qualified[j].Score()
	})
	sort.SliceStable(b.Monitor, func(i, j int) bool {
		return b.Monitor[i].Score() > b.Monitor[j].Score()
	})

	b.Groups = groupByCategory(b.Qualified, displayOrder)
	for _, item := range b.Qualified {
		b.QualifiedNet += item.NetProfit()
	}

	shown := len(b.Monitor)
	if th.MaxMonitorShown > 0 && shown > th.MaxMonitorShown {
		shown = th.MaxMonitorShown
	}
	b.Shown = b.Monitor[:shown]
	b.Overflow = len(b.Monitor) - shown

	return b
}

func groupByCategory(items []*Item, displayOrder []string) []CategoryGroup {
	byCategory := make(map[string][]*Item)
	var firstSeen []string
	for _, item := range items {
		if _, ok := byCategory[item.Category]; !ok {
			firstSeen = append(firstSeen, item.Category)
		}
		byCategory[item.Category] = append(byCategory[item.Category], item)
	}

	listed := make(map[string]struct{}, len(displayOrder))
	var order []string
	for _, name := range displayOrder {
		listed[name] = struct{}{}
		if _, ok := byCategory[name]; ok {
			order = append(order, name)
		}
	}
	for _, name := range firstSeen {
		if _, ok := listed[name]; !ok {
			order = append(order, name)
		}
	}

	groups := make([]CategoryGroup, 0, len(order))
	for _, name := range order {
		group := CategoryGroup{Name: name, Items: byCategory[name]}
		for _, item := range group.Items {
			group.NetProfit += item.NetProfit()
		}
		groups = append(groups, group)
	}
	return groups
}
