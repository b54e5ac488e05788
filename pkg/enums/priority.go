package enums

// Priority orders recommendations for display.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
	PriorityInfo   Priority = "info"
)

var priorityRank = map[Priority]int{
	PriorityHigh:   0,
	PriorityMedium: 1,
	PriorityLow:    2,
	PriorityInfo:   3,
}

// String implements fmt.Stringer.
func (p Priority) String() string {
	return string(p)
}

// Rank returns the display rank; high sorts before medium, low and info.
// Unknown priorities sort last.
func (p Priority) Rank() int {
	if rank, ok := priorityRank[p]; ok {
		return rank
	}
	return len(priorityRank)
}

// IsValid reports whether the value is a known Priority.
func (p Priority) IsValid() bool {
	_, ok := priorityRank[p]
	return ok
}
