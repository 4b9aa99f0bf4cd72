// Implements the ReadyQueue, which holds processes that have arrived and are waiting for the CPU.
// Processes are enqueued on admission and re-enqueued at the tail after a preempted slice.

package sim

import "strings"

// ReadyQueue is a FIFO queue of runnable processes.
// Dequeue advances a head index instead of reslicing from a rebuilt list,
// so both Enqueue and Dequeue are amortized O(1).
type ReadyQueue struct {
	items []*Process
	head  int
}

// Enqueue adds a process to the back of the ready queue.
func (rq *ReadyQueue) Enqueue(p *Process) {
	if p == nil {
		panic("Enqueue: process must not be nil")
	}
	rq.items = append(rq.items, p)
}

// Dequeue removes and returns the process at the front of the queue.
// Returns nil if the queue is empty.
func (rq *ReadyQueue) Dequeue() *Process {
	if rq.head == len(rq.items) {
		return nil
	}
	p := rq.items[rq.head]
	rq.items[rq.head] = nil
	rq.head++
	// Reclaim the consumed prefix once it dominates the backing array.
	if rq.head == len(rq.items) {
		rq.items = rq.items[:0]
		rq.head = 0
	} else if rq.head > 32 && rq.head*2 > len(rq.items) {
		n := copy(rq.items, rq.items[rq.head:])
		clear(rq.items[n:])
		rq.items = rq.items[:n]
		rq.head = 0
	}
	return p
}

// Len returns the number of processes in the queue.
func (rq *ReadyQueue) Len() int {
	return len(rq.items) - rq.head
}

// IDs returns the queued process IDs front to back.
func (rq *ReadyQueue) IDs() []string {
	ids := make([]string, 0, rq.Len())
	for _, p := range rq.items[rq.head:] {
		ids = append(ids, p.ID)
	}
	return ids
}

func (rq *ReadyQueue) String() string {
	return "[" + strings.Join(rq.IDs(), " ") + "]"
}
