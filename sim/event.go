package sim

import "container/heap"

// EventKind distinguishes the two transitions a component can make.
type EventKind int

const (
	// EventFailure moves a component into the failed set.
	EventFailure EventKind = iota
	// EventRepair moves a component out of the failed set.
	EventRepair
)

func (k EventKind) String() string {
	switch k {
	case EventFailure:
		return "failure"
	case EventRepair:
		return "repair"
	default:
		return "unknown"
	}
}

// Event is a scheduled failure or repair of one component.
type Event struct {
	Time      float64     // scheduled simulation time in hours
	Kind      EventKind   // failure or repair
	Component ComponentID // component the event applies to
	seq       uint64      // insertion order, tie-breaker for equal times
}

// EventQueue implements heap.Interface with deterministic ordering.
// Ordering: time → insertion sequence.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type EventQueue struct {
	events  []Event
	nextSeq uint64
}

// NewEventQueue creates an empty queue with room for capacity events.
func NewEventQueue(capacity int) *EventQueue {
	return &EventQueue{events: make([]Event, 0, capacity)}
}

func (q *EventQueue) Len() int { return len(q.events) }

func (q *EventQueue) Less(i, j int) bool {
	ei, ej := q.events[i], q.events[j]
	if ei.Time != ej.Time {
		return ei.Time < ej.Time
	}
	return ei.seq < ej.seq
}

func (q *EventQueue) Swap(i, j int) { q.events[i], q.events[j] = q.events[j], q.events[i] }

func (q *EventQueue) Push(x any) {
	q.events = append(q.events, x.(Event))
}

func (q *EventQueue) Pop() any {
	old := q.events
	n := len(old)
	item := old[n-1]
	q.events = old[0 : n-1]
	return item
}

// Schedule adds an event, stamping it with the next insertion sequence.
func (q *EventQueue) Schedule(ev Event) {
	ev.seq = q.nextSeq
	q.nextSeq++
	heap.Push(q, ev)
}

// PopNext removes and returns the earliest event.
// ok is false when the queue is empty.
func (q *EventQueue) PopNext() (ev Event, ok bool) {
	if len(q.events) == 0 {
		return Event{}, false
	}
	return heap.Pop(q).(Event), true
}

// Peek returns the earliest event without removing it.
func (q *EventQueue) Peek() (ev Event, ok bool) {
	if len(q.events) == 0 {
		return Event{}, false
	}
	return q.events[0], true
}

// Reset empties the queue and restarts insertion sequencing.
func (q *EventQueue) Reset() {
	q.events = q.events[:0]
	q.nextSeq = 0
}
