package notices

import "github.com/angelmondragon/storefront-checkout/pkg/enums"

// Notice is a message shown to the shopper on the next rendered page.
type Notice struct {
	Message  string               `json:"message"`
	Severity enums.NoticeSeverity `json:"severity"`
}

// Queue collects the notices of one request in insertion order. It is not
// safe for concurrent use.
type Queue struct {
	items []Notice
}

// NewQueue starts a queue holding notices carried over from earlier requests.
func NewQueue(carried ...Notice) *Queue {
	q := &Queue{}
	q.items = append(q.items, carried...)
	return q
}

func (q *Queue) Add(message string, severity enums.NoticeSeverity) {
	if message == "" {
		return
	}
	q.items = append(q.items, Notice{Message: message, Severity: severity})
}

func (q *Queue) Count(severity enums.NoticeSeverity) int {
	n := 0
	for _, item := range q.items {
		if item.Severity == severity {
			n++
		}
	}
	return n
}

func (q *Queue) Len() int {
	return len(q.items)
}

// Drain returns the queued notices and empties the queue.
func (q *Queue) Drain() []Notice {
	out := q.items
	q.items = nil
	if out == nil {
		return []Notice{}
	}
	return out
}
