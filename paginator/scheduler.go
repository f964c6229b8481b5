package paginator

import (
	"container/heap"
	"sync"

	"go.uber.org/zap"
)

// Task priority, higher runs first.
// ENUM(background, normal, input)
type Priority int

// Scheduler is cooperative task queue. Post may be called from any
// goroutine, tasks run on the goroutine calling RunPending.
type Scheduler interface {
	Post(p Priority, name string, fn func())
	RunPending() int
}

type task struct {
	priority Priority
	seq      uint64
	name     string
	fn       func()
}

type taskHeap []*task

func (h taskHeap) Len() int { return len(h) }

func (h taskHeap) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority > h[j].priority
	}
	return h[i].seq < h[j].seq
}

func (h taskHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *taskHeap) Push(x any) { *h = append(*h, x.(*task)) }

func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}

// Queue is priority ordered Scheduler. Tasks of the same priority run in
// the order they were posted.
type Queue struct {
	log *zap.Logger

	mu    sync.Mutex
	tasks taskHeap
	seq   uint64
}

var _ Scheduler = (*Queue)(nil)

// NewQueue creates empty queue.
func NewQueue(log *zap.Logger) *Queue {
	return &Queue{log: log.Named("scheduler")}
}

// Post implements Scheduler.
func (q *Queue) Post(p Priority, name string, fn func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.seq++
	heap.Push(&q.tasks, &task{priority: p, seq: q.seq, name: name, fn: fn})
}

// Len returns number of waiting tasks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.tasks.Len()
}

func (q *Queue) next() *task {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.tasks.Len() == 0 {
		return nil
	}
	return heap.Pop(&q.tasks).(*task)
}

// RunOne runs single task with the highest priority. Returns false when
// queue is empty.
func (q *Queue) RunOne() bool {
	t := q.next()
	if t == nil {
		return false
	}
	q.log.Debug("Running task", zap.String("task", t.name), zap.Stringer("priority", t.priority))
	t.fn()
	return true
}

// RunPending runs tasks until queue is empty, tasks posted meanwhile
// included. Returns number of tasks run.
func (q *Queue) RunPending() int {
	count := 0
	for q.RunOne() {
		count++
	}
	return count
}
