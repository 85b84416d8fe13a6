package queue

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/conduit/gpuutils"
	"github.com/vkngwrapper/conduit/hal"
	"golang.org/x/exp/slog"
)

type inFlightList struct {
	fenceValue uint64
	list       *CommandList
}

// CommandQueue submits command lists to one hardware queue and signals a fence after each
// submission. A worker goroutine waits for the fence value of every submitted list, resets the list
// and returns it to the pool GetCommandList draws from.
type CommandQueue struct {
	logger *slog.Logger
	device *Device
	kind   hal.QueueKind
	queue  hal.Queue
	fence  hal.Fence

	fenceMutex sync.Mutex
	fenceValue uint64

	// lifecycle is held for reading by every operation that feeds the worker and for writing by Destroy
	lifecycle sync.RWMutex
	destroyed bool

	available  chan *CommandList
	inFlight   chan inFlightList
	workerDone chan struct{}

	pendingMutex sync.Mutex
	pendingCond  *sync.Cond
	pending      int
}

func newCommandQueue(device *Device, kind hal.QueueKind) (*CommandQueue, error) {
	queue, err := device.device.CreateQueue(kind)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create %s", kind)
	}

	fence, err := device.device.CreateFence(0)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create fence for %s", kind)
	}

	q := &CommandQueue{
		logger:     device.logger,
		device:     device,
		kind:       kind,
		queue:      queue,
		fence:      fence,
		available:  make(chan *CommandList, device.options.MaxPooledCommandLists),
		inFlight:   make(chan inFlightList, device.options.InFlightCapacity),
		workerDone: make(chan struct{}),
	}
	q.pendingCond = sync.NewCond(&q.pendingMutex)

	go q.reclaim()

	q.logger.Debug("Created command queue", slog.String("kind", kind.String()))
	return q, nil
}

func (q *CommandQueue) Kind() hal.QueueKind { return q.kind }
func (q *CommandQueue) HAL() hal.Queue      { return q.queue }
func (q *CommandQueue) Fence() hal.Fence    { return q.fence }

// FenceValue is the last value this queue signaled
func (q *CommandQueue) FenceValue() uint64 {
	q.fenceMutex.Lock()
	defer q.fenceMutex.Unlock()

	return q.fenceValue
}

// GetCommandList returns a reset command list from the pool, or a new one if the pool is empty
func (q *CommandQueue) GetCommandList() (*CommandList, error) {
	q.lifecycle.RLock()
	defer q.lifecycle.RUnlock()

	if q.destroyed {
		return nil, errors.Wrapf(gpuutils.QueueDestroyedError, "%s", q.kind)
	}

	return q.getCommandList()
}

func (q *CommandQueue) getCommandList() (*CommandList, error) {
	select {
	case list := <-q.available:
		return list, nil
	default:
	}

	return newCommandList(q.device, q)
}

// ExecuteCommandList submits a single command list. See ExecuteCommandLists.
func (q *CommandQueue) ExecuteCommandList(list *CommandList) (uint64, error) {
	return q.ExecuteCommandLists(list)
}

// ExecuteCommandLists closes and submits lists in order, then signals the queue's fence. Deferred
// barriers of each list are resolved against the global resource state, which includes the final
// states of the lists submitted before it, and recorded into a separate list that executes first.
// The lists must not be used after submission. The returned fence value is reached once the GPU
// has finished all of them.
func (q *CommandQueue) ExecuteCommandLists(lists ...*CommandList) (uint64, error) {
	q.lifecycle.RLock()
	defer q.lifecycle.RUnlock()

	if q.destroyed {
		return 0, errors.Wrapf(gpuutils.QueueDestroyedError, "%s", q.kind)
	}

	for _, list := range lists {
		if list.queue != q {
			return 0, errors.Newf("%s list cannot be executed on %s", list.queue.kind, q.kind)
		}
	}

	submitted, computeLists, fenceValue, err := q.submit(lists)
	if err != nil {
		return 0, err
	}

	for _, list := range submitted {
		q.pushInFlight(fenceValue, list)
	}

	if len(computeLists) > 0 {
		computeQueue, err := q.device.Queue(hal.QueueCompute)
		if err != nil {
			return fenceValue, err
		}

		err = computeQueue.Wait(q)
		if err != nil {
			return fenceValue, err
		}

		_, err = computeQueue.ExecuteCommandLists(computeLists...)
		if err != nil {
			return fenceValue, err
		}
	}

	return fenceValue, nil
}

// submit resolves, commits and executes lists under the global state lock. If anything fails
// before the hardware queue accepts the batch, committed states are rolled back and the pending
// barrier lists go back to the pool.
func (q *CommandQueue) submit(lists []*CommandList) (submitted []*CommandList, computeLists []*CommandList, fenceValue uint64, err error) {
	global := q.device.global
	global.Lock()
	defer global.Unlock()

	recorders := make([]hal.CommandRecorder, 0, len(lists)*2)
	submitted = make([]*CommandList, 0, len(lists)*2)
	preludes := make([]*CommandList, 0, len(lists))

	fail := func(err error) ([]*CommandList, []*CommandList, uint64, error) {
		global.Rollback()
		for _, prelude := range preludes {
			q.recycle(prelude)
		}
		return nil, nil, 0, err
	}

	for _, list := range lists {
		pending, err := q.getCommandList()
		if err != nil {
			return fail(err)
		}
		preludes = append(preludes, pending)

		hasPendingBarriers, err := list.close(pending)
		if err != nil {
			return fail(err)
		}

		err = pending.Close()
		if err != nil {
			return fail(err)
		}

		if hasPendingBarriers {
			recorders = append(recorders, pending.recorder)
		}
		recorders = append(recorders, list.recorder)
		submitted = append(submitted, pending, list)

		if list.computeList != nil {
			computeLists = append(computeLists, list.computeList)
		}
	}

	err = q.queue.Execute(recorders)
	if err != nil {
		return fail(errors.Wrapf(err, "failed to execute %d recorders on %s", len(recorders), q.kind))
	}

	// The batch is on the GPU now, so its final states stand even if the signal fails
	fenceValue, err = q.Signal()
	if err != nil {
		return nil, nil, 0, err
	}

	q.logger.LogAttrs(context.Background(), slog.LevelDebug, "Submitted command lists",
		slog.String("queue", q.kind.String()),
		slog.Int("lists", len(lists)),
		slog.Int("recorders", len(recorders)),
		slog.Uint64("fence", fenceValue))

	return submitted, computeLists, fenceValue, nil
}

func (q *CommandQueue) pushInFlight(fenceValue uint64, list *CommandList) {
	q.pendingMutex.Lock()
	q.pending++
	q.pendingMutex.Unlock()

	q.inFlight <- inFlightList{fenceValue: fenceValue, list: list}
}

func (q *CommandQueue) finishInFlight() {
	q.pendingMutex.Lock()
	q.pending--
	q.pendingMutex.Unlock()

	q.pendingCond.Broadcast()
}

// InFlightCount is the number of submitted command lists that have not been reclaimed yet
func (q *CommandQueue) InFlightCount() int {
	q.pendingMutex.Lock()
	defer q.pendingMutex.Unlock()

	return q.pending
}

// Signal advances the queue's fence value and asks the GPU to reach it once all previously
// submitted work completes
func (q *CommandQueue) Signal() (uint64, error) {
	q.fenceMutex.Lock()
	defer q.fenceMutex.Unlock()

	value := q.fenceValue + 1
	err := q.queue.Signal(q.fence, value)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to signal %s fence value %d", q.kind, value)
	}

	q.fenceValue = value
	return value, nil
}

func (q *CommandQueue) IsFenceComplete(fenceValue uint64) bool {
	return q.fence.CompletedValue() >= fenceValue
}

// WaitForFenceValue blocks until the GPU has reached fenceValue on this queue
func (q *CommandQueue) WaitForFenceValue(fenceValue uint64) error {
	if q.IsFenceComplete(fenceValue) {
		return nil
	}

	err := q.fence.Wait(fenceValue)
	if err != nil {
		return errors.Wrapf(err, "failed to wait for %s fence value %d", q.kind, fenceValue)
	}
	return nil
}

// Wait makes the GPU hold this queue's subsequent work until other reaches the last value it
// signaled. It does not block the calling goroutine.
func (q *CommandQueue) Wait(other *CommandQueue) error {
	value := other.FenceValue()

	err := q.queue.Wait(other.fence, value)
	if err != nil {
		return errors.Wrapf(err, "%s failed to wait for %s fence value %d", q.kind, other.kind, value)
	}
	return nil
}

// Flush blocks until every submitted list has been reclaimed and the last signaled fence value
// has been reached
func (q *CommandQueue) Flush() error {
	q.pendingMutex.Lock()
	for q.pending > 0 {
		q.pendingCond.Wait()
	}
	q.pendingMutex.Unlock()

	return q.WaitForFenceValue(q.FenceValue())
}

// Destroy flushes the queue and stops its worker. Operations on a destroyed queue return
// QueueDestroyedError.
func (q *CommandQueue) Destroy() error {
	q.lifecycle.Lock()
	defer q.lifecycle.Unlock()

	if q.destroyed {
		return nil
	}

	err := q.Flush()
	q.destroyed = true
	close(q.inFlight)
	<-q.workerDone

	return err
}

func (q *CommandQueue) reclaim() {
	defer close(q.workerDone)

	for entry := range q.inFlight {
		err := q.WaitForFenceValue(entry.fenceValue)
		if err != nil {
			q.logger.LogAttrs(context.Background(), slog.LevelError, "Failed to wait for submitted command list",
				slog.String("queue", q.kind.String()),
				slog.Uint64("fence", entry.fenceValue),
				slog.Any("error", err))
			q.finishInFlight()
			continue
		}

		q.recycle(entry.list)
		q.finishInFlight()
	}
}

// recycle resets a list the GPU no longer uses and offers it back to the pool. Lists that fail to
// reset, or that do not fit in the pool, are released.
func (q *CommandQueue) recycle(list *CommandList) {
	err := list.Reset()
	if err != nil {
		q.logger.LogAttrs(context.Background(), slog.LevelError, "Failed to reset command list, releasing it",
			slog.String("queue", q.kind.String()),
			slog.Any("error", err))
		return
	}

	select {
	case q.available <- list:
	default:
		q.logger.Debug("Command list pool is full, releasing list", slog.String("queue", q.kind.String()))
	}
}
