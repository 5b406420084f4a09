package hydration

// Summary condenses a bucket sequence for display above the history
// graph. The day view shows the raw total; longer periods show the
// integer average per bucket.
type Summary struct {
	TotalConsumed  int    `json:"total_consumed"`
	TotalGoal      int    `json:"total_goal"`
	Average        int    `json:"average"`
	Label          string `json:"label"`
	MaxMonthlyGoal int    `json:"max_monthly_goal,omitempty"`
}

// Summarize computes totals and the per-bucket average over a period's
// buckets. For the year period it also tracks the largest monthly goal,
// used as the reference line on the yearly graph.
func Summarize(p Period, buckets []Bucket) Summary {
	s := Summary{Label: "Average"}
	if p == PeriodDay {
		s.Label = "Total"
	}

	for _, b := range buckets {
		s.TotalConsumed += b.Consumed
		s.TotalGoal += b.Goal
		if p == PeriodYear && b.Goal > s.MaxMonthlyGoal {
			s.MaxMonthlyGoal = b.Goal
		}
	}

	if n := len(buckets); n > 0 {
		s.Average = s.TotalConsumed / n
	}
	return s
}
