package software

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/conduit/hal"
)

// Fence is a counter that queues advance when they process a signal
type Fence struct {
	mutex     sync.Mutex
	cond      *sync.Cond
	completed uint64
}

var _ hal.Fence = &Fence{}

func NewFence(initialValue uint64) *Fence {
	fence := &Fence{completed: initialValue}
	fence.cond = sync.NewCond(&fence.mutex)
	return fence
}

func (f *Fence) CompletedValue() uint64 {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	return f.completed
}

func (f *Fence) Wait(value uint64) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	for f.completed < value {
		f.cond.Wait()
	}
	return nil
}

// Signal sets the fence value from the CPU
func (f *Fence) Signal(value uint64) {
	f.mutex.Lock()
	f.completed = value
	f.mutex.Unlock()

	f.cond.Broadcast()
}

// ExecutedList is the log of one recorder as it was when a queue executed it
type ExecutedList struct {
	Kind     hal.QueueKind
	Recorder *Recorder
	Commands []Command
}

type queueOp struct {
	execute []ExecutedList
	fence   hal.Fence
	value   uint64
	wait    bool
}

// Queue executes submissions in order on a worker goroutine. Hold pauses the worker before its
// next submission so that tests can keep work in flight.
type Queue struct {
	kind hal.QueueKind
	ops  chan queueOp
	done chan struct{}

	stopMutex sync.RWMutex
	stopped   bool

	mutex    sync.Mutex
	cond     *sync.Cond
	held     bool
	executed []ExecutedList
}

var _ hal.Queue = &Queue{}

func newQueue(kind hal.QueueKind) *Queue {
	queue := &Queue{
		kind: kind,
		ops:  make(chan queueOp, 1024),
		done: make(chan struct{}),
	}
	queue.cond = sync.NewCond(&queue.mutex)

	go queue.run()
	return queue
}

func (q *Queue) Kind() hal.QueueKind { return q.kind }

func (q *Queue) run() {
	defer close(q.done)

	for op := range q.ops {
		q.mutex.Lock()
		for q.held {
			q.cond.Wait()
		}
		q.mutex.Unlock()

		switch {
		case op.execute != nil:
			q.mutex.Lock()
			q.executed = append(q.executed, op.execute...)
			q.mutex.Unlock()
		case op.wait:
			_ = op.fence.Wait(op.value)
		default:
			op.fence.(*Fence).Signal(op.value)
		}
	}
}

func (q *Queue) submit(op queueOp) error {
	q.stopMutex.RLock()
	defer q.stopMutex.RUnlock()

	if q.stopped {
		return errors.Newf("%s queue has been stopped", q.kind)
	}

	q.ops <- op
	return nil
}

func (q *Queue) Execute(recorders []hal.CommandRecorder) error {
	lists := make([]ExecutedList, 0, len(recorders))
	for _, recorder := range recorders {
		softwareRecorder, ok := recorder.(*Recorder)
		if !ok {
			return errors.Newf("%T is not a software recorder", recorder)
		}
		if !softwareRecorder.closed {
			return errors.Newf("%s queue cannot execute a recorder that is still open", q.kind)
		}

		lists = append(lists, ExecutedList{
			Kind:     softwareRecorder.kind,
			Recorder: softwareRecorder,
			Commands: softwareRecorder.Commands(),
		})
	}

	return q.submit(queueOp{execute: lists})
}

func (q *Queue) Signal(fence hal.Fence, value uint64) error {
	if _, ok := fence.(*Fence); !ok {
		return errors.Newf("%T is not a software fence", fence)
	}

	return q.submit(queueOp{fence: fence, value: value})
}

func (q *Queue) Wait(fence hal.Fence, value uint64) error {
	return q.submit(queueOp{fence: fence, value: value, wait: true})
}

// Executed returns every list this queue has executed, in execution order
func (q *Queue) Executed() []ExecutedList {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	executed := make([]ExecutedList, len(q.executed))
	copy(executed, q.executed)
	return executed
}

// Hold stops the worker before it processes its next submission
func (q *Queue) Hold() {
	q.mutex.Lock()
	q.held = true
	q.mutex.Unlock()
}

// Release lets a held worker continue
func (q *Queue) Release() {
	q.mutex.Lock()
	q.held = false
	q.mutex.Unlock()

	q.cond.Broadcast()
}

func (q *Queue) stop() {
	q.stopMutex.Lock()
	if q.stopped {
		q.stopMutex.Unlock()
		return
	}
	q.stopped = true
	close(q.ops)
	q.stopMutex.Unlock()

	q.Release()
	<-q.done
}
