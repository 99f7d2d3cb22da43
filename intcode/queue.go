package intcode

import (
	"fmt"
	"strings"
)

// Queue is a first-in first-out sequence of machine words.
type Queue struct {
	vals []int
	head int
}

// Push appends v to the back of the queue.
func (q *Queue) Push(v int) {
	if q.head > 0 && q.head == len(q.vals) {
		q.vals, q.head = q.vals[:0], 0
	}
	q.vals = append(q.vals, v)
}

// Pop removes and returns the value at the front of the queue.
// It reports false if the queue is empty.
func (q *Queue) Pop() (int, bool) {
	if q.head == len(q.vals) {
		return 0, false
	}
	v := q.vals[q.head]
	q.head++
	return v, true
}

// Len returns the number of values in the queue.
func (q *Queue) Len() int { return len(q.vals) - q.head }

// Values returns a copy of the queued values, front first.
func (q *Queue) Values() []int {
	return append([]int(nil), q.vals[q.head:]...)
}

func (q *Queue) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for _, v := range q.vals[q.head:] {
		b.WriteByte(' ')
		fmt.Fprintf(&b, "%d", v)
	}
	b.WriteByte(' ')
	b.WriteByte(')')
	return b.String()
}

// queues is the non-interactive Device: input is taken from in and output
// is appended to out.
type queues struct {
	in, out Queue
}

func (q *queues) In() (int, error) {
	v, ok := q.in.Pop()
	if !ok {
		return 0, InputStarvation
	}
	return v, nil
}

func (q *queues) Out(v int) error {
	q.out.Push(v)
	return nil
}
