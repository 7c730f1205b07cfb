package txn

import (
	"sort"

	perrors "github.com/pkg/errors"

	"github.com/huangjunwen/fbcanal/event"
	"github.com/huangjunwen/fbcanal/logr"
)

// Registry maps transaction numbers to their buffers.
type Registry struct {
	sink    Sink
	logger  logr.Logger
	discard DiscardHook
	buffers map[int64]*Buffer
}

// Option configures Registry.
type Option func(*Registry)

// WithLogger sets the logger of Registry.
func WithLogger(logger logr.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithDiscardHook sets a hook called whenever buffered events are rolled back.
func WithDiscardHook(hook DiscardHook) Option {
	return func(r *Registry) {
		r.discard = hook
	}
}

// NewRegistry creates a Registry flushing into sink.
func NewRegistry(sink Sink, opts ...Option) *Registry {
	if sink == nil {
		panic(perrors.New("NewRegistry: nil sink"))
	}
	r := &Registry{
		sink:    sink,
		logger:  logr.Nop,
		buffers: map[int64]*Buffer{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Begin registers a new buffer for tnx and emits START TRANSACTION directly.
// A stale buffer of the same number is replaced.
func (r *Registry) Begin(tnx int64) *Buffer {
	if old, ok := r.buffers[tnx]; ok {
		r.logger.Warn("transaction already registered, replacing", "tnx", tnx, "buffered", old.Len())
		old.end()
	}
	b := newBuffer(tnx, r.sink, r.discard, r.logger)
	r.buffers[tnx] = b
	r.sink.Append(event.NewMarker(event.StartTransaction, tnx))
	return b
}

// Get returns the buffer of tnx.
func (r *Registry) Get(tnx int64) (*Buffer, error) {
	b, ok := r.buffers[tnx]
	if !ok {
		return nil, perrors.Wrapf(ErrNotFound, "transaction %d", tnx)
	}
	return b, nil
}

// End removes tnx from the registry and ends its buffer. Buffered events (if
// any) are dropped without a ROLLBACK event.
func (r *Registry) End(tnx int64) {
	if b, ok := r.buffers[tnx]; ok {
		b.end()
		delete(r.buffers, tnx)
	}
}

// Len returns the number of registered transactions.
func (r *Registry) Len() int {
	return len(r.buffers)
}

// Tnxs returns registered transaction numbers in ascending order.
func (r *Registry) Tnxs() []int64 {
	ret := make([]int64, 0, len(r.buffers))
	for tnx := range r.buffers {
		ret = append(ret, tnx)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i] < ret[j] })
	return ret
}

// CleanupTransactions rolls back and removes every registered transaction in
// ascending transaction number order.
func (r *Registry) CleanupTransactions() {
	for _, tnx := range r.Tnxs() {
		r.logger.Debug("rollback leftover transaction", "tnx", tnx)
		b := r.buffers[tnx]
		b.Rollback()
		b.ended = true
		delete(r.buffers, tnx)
	}
}
