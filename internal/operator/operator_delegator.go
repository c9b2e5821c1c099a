package operator

import (
	"context"
	"errors"
	"sync"

	"github.com/carson-networks/bank-server/internal/operator/actions"
	"github.com/carson-networks/bank-server/internal/storage"
)

var ErrStopped = errors.New("operator stopped")

// OperatorDelegator manages the queue, starts/stops Operators (workers), and enqueues items.
type OperatorDelegator struct {
	storage    *storage.Storage
	queue      chan ActionItem
	done       chan struct{}
	numWorkers int
	wg         sync.WaitGroup
	stopOnce   sync.Once

	// mu orders enqueues against Stop: nothing is queued once done is closed.
	mu sync.RWMutex
}

func NewOperatorDelegator(s *storage.Storage, numWorkers int) *OperatorDelegator {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &OperatorDelegator{
		storage:    s,
		queue:      make(chan ActionItem, 1000),
		done:       make(chan struct{}),
		numWorkers: numWorkers,
	}
}

func (d *OperatorDelegator) Start() {
	for i := 0; i < d.numWorkers; i++ {
		d.wg.Add(1)
		op := NewOperator(d.storage, d.queue, d.done)
		go func() {
			defer d.wg.Done()
			op.Run()
		}()
	}
}

// Stop waits for in-flight actions and fails whatever is still queued.
func (d *OperatorDelegator) Stop() {
	d.stopOnce.Do(func() {
		d.mu.Lock()
		close(d.done)
		d.mu.Unlock()

		d.wg.Wait()
		for {
			select {
			case item := <-d.queue:
				item.response <- ActionItemResponse{err: ErrStopped}
			default:
				return
			}
		}
	})
}

// Process enqueues the action and blocks until a worker has committed or
// rolled it back. Once queued the action always runs to an outcome, so a
// context cancelled after that point does not hide a committed write.
func (d *OperatorDelegator) Process(ctx context.Context, action actions.IAction) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	respCh := make(chan ActionItemResponse, 1)
	item := ActionItem{
		ctx:      ctx,
		action:   action,
		response: respCh,
	}
	if err := d.enqueue(ctx, item); err != nil {
		return err
	}

	resp := <-respCh
	return resp.err
}

func (d *OperatorDelegator) enqueue(ctx context.Context, item ActionItem) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	select {
	case <-d.done:
		return ErrStopped
	default:
	}

	select {
	case d.queue <- item:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
