package engine

import (
	"container/heap"
	"time"
)

// Group identifies a set of scheduled work that is cancelled together
// Group zero is the ungrouped default and cannot be cancelled as a whole
type Group uint64

// TimerID identifies a single scheduled action
type TimerID uint64

// Task is per-tick work; Step returns true once finished
type Task interface {
	Step(dt time.Duration) (done bool)
}

// TaskFunc adapts a function to Task
type TaskFunc func(dt time.Duration) bool

// Step implements Task
func (f TaskFunc) Step(dt time.Duration) bool { return f(dt) }

type timer struct {
	id        TimerID
	due       time.Duration
	seq       uint64
	group     Group
	fn        func()
	cancelled bool
	index     int
}

type taskEntry struct {
	task      Task
	group     Group
	cancelled bool
}

// timerHeap orders timers by due time, then by scheduling order
type timerHeap []*timer

func (h timerHeap) Len() int { return len(h) }
func (h timerHeap) Less(i, j int) bool {
	if h[i].due != h[j].due {
		return h[i].due < h[j].due
	}
	return h[i].seq < h[j].seq
}
func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *timerHeap) Push(x any) {
	t := x.(*timer)
	t.index = len(*h)
	*h = append(*h, t)
}
func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}

// Scheduler is the cooperative replacement for engine coroutines
// A priority queue of (due, action) plus per-tick tasks, both advanced by Tick
// Not safe for concurrent use; the session owner serializes access
type Scheduler struct {
	now    time.Duration
	seq    uint64
	timers timerHeap
	byID   map[TimerID]*timer

	tasks   []*taskEntry
	pending []*taskEntry // Added during a tick, stepped from the next tick

	nextGroup Group
	ticking   bool
	tickCount uint64
}

// NewScheduler creates a scheduler at time zero
func NewScheduler() *Scheduler {
	return &Scheduler{
		byID: make(map[TimerID]*timer),
	}
}

// Now returns scheduler time elapsed since creation or last Reset
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Ticks returns the number of Tick calls since creation or last Reset
func (s *Scheduler) Ticks() uint64 {
	return s.tickCount
}

// NewGroup allocates a fresh cancellation group
func (s *Scheduler) NewGroup() Group {
	s.nextGroup++
	return s.nextGroup
}

// At schedules fn to run at absolute scheduler time due
// A due time already in the past runs on the next Tick
func (s *Scheduler) At(due time.Duration, g Group, fn func()) TimerID {
	s.seq++
	t := &timer{
		id:    TimerID(s.seq),
		due:   due,
		seq:   s.seq,
		group: g,
		fn:    fn,
	}
	heap.Push(&s.timers, t)
	s.byID[t.id] = t
	return t.id
}

// After schedules fn to run delay after the current time
func (s *Scheduler) After(delay time.Duration, g Group, fn func()) TimerID {
	if delay < 0 {
		delay = 0
	}
	return s.At(s.now+delay, g, fn)
}

// Run registers a per-tick task; it is first stepped on the tick after registration
func (s *Scheduler) Run(g Group, task Task) {
	e := &taskEntry{task: task, group: g}
	if s.ticking {
		s.pending = append(s.pending, e)
		return
	}
	s.tasks = append(s.tasks, e)
}

// CancelTimer removes a single pending action, returns false if it already ran
func (s *Scheduler) CancelTimer(id TimerID) bool {
	t, ok := s.byID[id]
	if !ok {
		return false
	}
	t.cancelled = true
	delete(s.byID, id)
	return true
}

// Cancel discards every pending action and task of group g
// Returns the number of entries cancelled
func (s *Scheduler) Cancel(g Group) int {
	if g == 0 {
		return 0
	}
	n := 0
	for _, t := range s.timers {
		if t.group == g && !t.cancelled {
			t.cancelled = true
			delete(s.byID, t.id)
			n++
		}
	}
	for _, list := range [][]*taskEntry{s.tasks, s.pending} {
		for _, e := range list {
			if e.group == g && !e.cancelled {
				e.cancelled = true
				n++
			}
		}
	}
	return n
}

// Pending returns live timers and tasks
func (s *Scheduler) Pending() (timers, tasks int) {
	timers = len(s.byID)
	for _, list := range [][]*taskEntry{s.tasks, s.pending} {
		for _, e := range list {
			if !e.cancelled {
				tasks++
			}
		}
	}
	return timers, tasks
}

// Tick advances time by dt, runs every action due by the new time in order, then steps tasks
// Actions scheduled by actions with a due time inside this tick also run in this tick
func (s *Scheduler) Tick(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	s.ticking = true
	s.now += dt
	s.tickCount++

	for len(s.timers) > 0 && s.timers[0].due <= s.now {
		t := heap.Pop(&s.timers).(*timer)
		if t.cancelled {
			continue
		}
		delete(s.byID, t.id)
		t.fn()
	}

	live := s.tasks[:0]
	for _, e := range s.tasks {
		if e.cancelled {
			continue
		}
		if e.task.Step(dt) {
			continue
		}
		// Step may have cancelled its own group
		if !e.cancelled {
			live = append(live, e)
		}
	}
	for i := len(live); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = live

	s.ticking = false
	for _, e := range s.pending {
		if !e.cancelled {
			s.tasks = append(s.tasks, e)
		}
	}
	s.pending = s.pending[:0]
}

// Reset drops all work and rewinds time to zero
func (s *Scheduler) Reset() {
	s.now = 0
	s.tickCount = 0
	s.timers = nil
	s.byID = make(map[TimerID]*timer)
	s.tasks = nil
	s.pending = nil
}
