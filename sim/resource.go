// Implements the finite-capacity resource pools that model pipeline stages
// (credit-check clerks, inventory allocators, fulfillment workers).

package sim

import (
	"container/heap"
	"fmt"
)

// Discipline selects a pool's waiting-queue ordering.
type Discipline string

const (
	// DisciplineFIFO releases waiters in arrival order.
	DisciplineFIFO Discipline = "fifo"
	// DisciplinePriority releases the highest-priority waiter first,
	// FIFO among equal priorities. Required by the MAS architecture.
	DisciplinePriority Discipline = "priority"
)

// waiter is a parked acquisition request.
type waiter struct {
	order    *Order
	priority float64
	seq      uint64
	resume   func(*Engine)
}

// waiterHeap orders waiters by descending priority, then by arrival order.
// With all priorities zero (FIFO discipline) it degenerates to a FIFO queue.
type waiterHeap []*waiter

func (wh waiterHeap) Len() int { return len(wh) }
func (wh waiterHeap) Less(i, j int) bool {
	if wh[i].priority != wh[j].priority {
		return wh[i].priority > wh[j].priority
	}
	return wh[i].seq < wh[j].seq
}
func (wh waiterHeap) Swap(i, j int) { wh[i], wh[j] = wh[j], wh[i] }

func (wh *waiterHeap) Push(x any) {
	*wh = append(*wh, x.(*waiter))
}

func (wh *waiterHeap) Pop() any {
	old := *wh
	n := len(old)
	item := old[n-1]
	*wh = old[0 : n-1]
	return item
}

// Pool models a finite-capacity processing stage with request/release
// semantics. The held count never exceeds capacity; no two orders share a
// capacity unit.
type Pool struct {
	name       string
	capacity   int
	held       int
	discipline Discipline
	waiters    waiterHeap
	nextSeq    uint64
}

// NewPool creates a pool. Capacity must be positive; configuration
// validation happens before any pool is built, so a violation here is a
// programming error.
func NewPool(name string, capacity int, d Discipline) *Pool {
	if capacity <= 0 {
		panic(fmt.Sprintf("pool %s: capacity must be positive, got %d", name, capacity))
	}
	return &Pool{name: name, capacity: capacity, discipline: d}
}

// Acquire grants a capacity unit immediately when one is free, invoking
// resume synchronously. Otherwise the order's progress is parked until a
// Release hands it a unit, at which point resume runs via a GrantEvent.
// priority is only consulted under DisciplinePriority.
func (p *Pool) Acquire(eng *Engine, o *Order, priority float64, resume func(*Engine)) {
	if p.held < p.capacity {
		p.held++
		resume(eng)
		return
	}
	w := &waiter{order: o, seq: p.nextSeq, resume: resume}
	if p.discipline == DisciplinePriority {
		w.priority = priority
	}
	p.nextSeq++
	heap.Push(&p.waiters, w)
}

// Release returns a capacity unit. If a waiter exists, the unit is handed to
// it directly, so there is never a transiently free slot a newcomer could
// steal ahead of the queue. The waiter's resumption is scheduled at the
// current clock so it flows through the event queue.
func (p *Pool) Release(eng *Engine) {
	if p.held == 0 {
		panic(fmt.Sprintf("pool %s: release with no held capacity", p.name))
	}
	if p.waiters.Len() > 0 {
		w := heap.Pop(&p.waiters).(*waiter)
		eng.Schedule(&GrantEvent{time: eng.Clock, Pool: p, waiter: w})
		return
	}
	p.held--
}

// Held returns the number of capacity units currently in use.
func (p *Pool) Held() int { return p.held }

// Waiting returns the current waiting-queue depth. MAS agents read this as
// their locally observed queue state.
func (p *Pool) Waiting() int { return p.waiters.Len() }

// Capacity returns the pool's total capacity.
func (p *Pool) Capacity() int { return p.capacity }

// Name returns the pool's stage name.
func (p *Pool) Name() string { return p.name }
