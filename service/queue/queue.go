// Package queue implements the priority-ordered ready queue of the
// scheduling engine. Entries reference processes by pid – the process
// table owns the records – and are ordered by effective priority with
// numerically smaller values dequeued first. Ties are broken by
// insertion sequence, so equal priorities behave as a FIFO: a preempted
// process re-enters behind its peers, and an aged process that catches
// up with a re-enqueued hog wins the tie.
package queue

import (
	"container/heap"
	"sync"
)

// Entry is one ready-queue member. Priority mirrors the process's
// effective priority at the time of the last enqueue or aging pass.
type Entry struct {
	PID      int
	Priority int
	seq      uint64
}

type entryHeap []Entry

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool {
	if h[i].Priority != h[j].Priority {
		return h[i].Priority < h[j].Priority
	}
	return h[i].seq < h[j].seq
}

func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x any) { *h = append(*h, x.(Entry)) }

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Queue is a heap-backed ready queue safe for concurrent use. Every
// operation is atomic with respect to the others – no caller can observe
// a partial insert, removal or reorder.
type Queue struct {
	mu      sync.Mutex
	entries entryHeap
	seq     uint64
}

// New creates an empty ready queue.
func New() *Queue {
	return &Queue{}
}

// Enqueue inserts a process reference keyed by its current effective
// priority.
func (q *Queue) Enqueue(pid, priority int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.seq++
	heap.Push(&q.entries, Entry{PID: pid, Priority: priority, seq: q.seq})
}

// Dequeue removes and returns the pid with the numerically smallest
// effective priority. The second return value is false when the queue is
// empty.
func (q *Queue) Dequeue() (int, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.entries) == 0 {
		return 0, false
	}
	entry := heap.Pop(&q.entries).(Entry)
	return entry.PID, true
}

// Peek returns the pid that Dequeue would return, without removing it.
func (q *Queue) Peek() (int, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.entries) == 0 {
		return 0, false
	}
	return q.entries[0].PID, true
}

// IsEmpty reports whether the queue holds no entries.
func (q *Queue) IsEmpty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries) == 0
}

// Len returns the number of queued entries.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// Remove deletes the entry for pid, used when a READY process is moved
// to WAITING by an external command. It reports whether pid was present.
func (q *Queue) Remove(pid int) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i := range q.entries {
		if q.entries[i].PID == pid {
			heap.Remove(&q.entries, i)
			return true
		}
	}
	return false
}

// ApplyAging recomputes every member's priority via the supplied
// callback and restores heap order. The rebuild is O(n); recompute must
// not call back into the queue.
func (q *Queue) ApplyAging(recompute func(pid int) int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i := range q.entries {
		q.entries[i].Priority = recompute(q.entries[i].PID)
	}
	heap.Init(&q.entries)
}

// PIDs returns the queued pids in unspecified order. Intended for
// snapshot and invariant checks, not for scheduling decisions.
func (q *Queue) PIDs() []int {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]int, len(q.entries))
	for i, entry := range q.entries {
		out[i] = entry.PID
	}
	return out
}
