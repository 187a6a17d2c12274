package domain

// DateLayout is the payload format for calendar dates.
const DateLayout = "2006-01-02"

type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
	PriorityNone   Priority = "none"
)

// Priorities lists priorities in picker order.
var Priorities = []Priority{PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow, PriorityNone}

// ValidPriority reports whether p is a known priority.
func ValidPriority(p Priority) bool {
	for _, v := range Priorities {
		if v == p {
			return true
		}
	}
	return false
}

type StateGroup string

const (
	StateBacklog   StateGroup = "backlog"
	StateUnstarted StateGroup = "unstarted"
	StateStarted   StateGroup = "started"
	StateCompleted StateGroup = "completed"
	StateCancelled StateGroup = "cancelled"
)

// ValidStateGroups is the canonical set of accepted state group strings.
var ValidStateGroups = map[string]bool{
	"backlog": true, "unstarted": true, "started": true,
	"completed": true, "cancelled": true,
}

// Closed reports whether work in this group is finished.
func (g StateGroup) Closed() bool {
	return g == StateCompleted || g == StateCancelled
}
