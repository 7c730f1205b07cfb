// Package txn buffers the events of open transactions so that only committed
// work reaches the segment document.
package txn

import (
	perrors "github.com/pkg/errors"

	"github.com/huangjunwen/fbcanal/event"
	"github.com/huangjunwen/fbcanal/logr"
)

// Sink receives flushed events in order.
type Sink interface {
	Append(ev event.Event)
}

// DiscardHook is called with the number of events thrown away by a rollback.
type DiscardHook func(tnx int64, n int)

// Buffer holds the events of one transaction as a stack of lists: one list per
// open savepoint level above the bottom list.
//
// Once its transaction is removed from the Registry (or replaced) a Buffer is
// ended: further calls are logged and ignored.
type Buffer struct {
	tnx     int64
	sink    Sink
	discard DiscardHook
	logger  logr.Logger
	stack   [][]event.Event
	ended   bool
}

func newBuffer(tnx int64, sink Sink, discard DiscardHook, logger logr.Logger) *Buffer {
	b := &Buffer{
		tnx:     tnx,
		sink:    sink,
		discard: discard,
		logger:  logger,
	}
	b.reset()
	return b
}

// Tnx returns the transaction number.
func (b *Buffer) Tnx() int64 {
	return b.tnx
}

// Ended returns true if the transaction is no longer registered.
func (b *Buffer) Ended() bool {
	return b.ended
}

// Depth returns the number of lists, 1 means no open savepoint.
func (b *Buffer) Depth() int {
	return len(b.stack)
}

// Len returns the number of buffered events in all levels.
func (b *Buffer) Len() int {
	n := 0
	for _, events := range b.stack {
		n += len(events)
	}
	return n
}

// Append buffers an event at the current savepoint level.
func (b *Buffer) Append(ev event.Event) {
	if !b.alive("append") {
		return
	}
	top := len(b.stack) - 1
	b.stack[top] = append(b.stack[top], ev)
}

// StartSavepoint records a SAVEPOINT marker and opens a new level.
func (b *Buffer) StartSavepoint() {
	if !b.alive("start savepoint") {
		return
	}
	b.Append(event.NewMarker(event.Savepoint, b.tnx))
	b.stack = append(b.stack, []event.Event{})
}

// ReleaseSavepoint merges the innermost level into its parent and records a
// RELEASE SAVEPOINT marker.
func (b *Buffer) ReleaseSavepoint() error {
	if b.ended {
		return perrors.Wrapf(ErrNotFound, "transaction %d ended", b.tnx)
	}
	if err := b.release(); err != nil {
		return err
	}
	b.Append(event.NewMarker(event.ReleaseSavepoint, b.tnx))
	return nil
}

// RollbackSavepoint discards the innermost level and records a ROLLBACK
// SAVEPOINT marker.
func (b *Buffer) RollbackSavepoint() error {
	if b.ended {
		return perrors.Wrapf(ErrNotFound, "transaction %d ended", b.tnx)
	}
	if len(b.stack) <= 1 {
		return perrors.Wrapf(ErrNoSavepoint, "rollback savepoint of transaction %d", b.tnx)
	}
	top := len(b.stack) - 1
	b.discarded(len(b.stack[top]))
	b.stack = b.stack[:top]
	b.Append(event.NewMarker(event.RollbackSavepoint, b.tnx))
	return nil
}

// Prepare emits PREPARE TRANSACTION directly, the buffer is untouched.
func (b *Buffer) Prepare() {
	if !b.alive("prepare") {
		return
	}
	b.sink.Append(event.NewMarker(event.PrepareTransaction, b.tnx))
}

// Commit merges any still open savepoint levels, flushes everything to the sink
// followed by COMMIT, and clears the buffer.
func (b *Buffer) Commit() {
	if !b.alive("commit") {
		return
	}
	// Savepoints not released explicitly are part of the committed work.
	for len(b.stack) > 1 {
		b.release()
	}
	for _, ev := range b.stack[0] {
		b.sink.Append(ev)
	}
	b.sink.Append(event.NewMarker(event.Commit, b.tnx))
	b.reset()
}

// Rollback discards everything and emits ROLLBACK.
func (b *Buffer) Rollback() {
	if !b.alive("rollback") {
		return
	}
	b.discarded(b.Len())
	b.sink.Append(event.NewMarker(event.Rollback, b.tnx))
	b.reset()
}

func (b *Buffer) release() error {
	if len(b.stack) <= 1 {
		return perrors.Wrapf(ErrNoSavepoint, "release savepoint of transaction %d", b.tnx)
	}
	top := len(b.stack) - 1
	b.stack[top-1] = append(b.stack[top-1], b.stack[top]...)
	b.stack = b.stack[:top]
	return nil
}

// end drops buffered events (without ROLLBACK) and marks b ended.
func (b *Buffer) end() {
	b.discarded(b.Len())
	b.reset()
	b.ended = true
}

func (b *Buffer) alive(op string) bool {
	if b.ended {
		b.logger.Warn("transaction already ended, ignored", "tnx", b.tnx, "op", op)
		return false
	}
	return true
}

func (b *Buffer) discarded(n int) {
	if n > 0 && b.discard != nil {
		b.discard(b.tnx, n)
	}
}

func (b *Buffer) reset() {
	b.stack = [][]event.Event{{}}
}
