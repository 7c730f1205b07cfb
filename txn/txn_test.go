package txn

import (
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/huangjunwen/fbcanal/event"
	"github.com/huangjunwen/fbcanal/logr"
	"github.com/huangjunwen/fbcanal/record"
)

type sliceSink struct {
	events []event.Event
}

func (s *sliceSink) Append(ev event.Event) {
	s.events = append(s.events, ev)
}

func (s *sliceSink) summary() []string {
	ret := []string{}
	for _, ev := range s.events {
		if ev.Kind.IsDML() {
			ret = append(ret, ev.Kind.String()+" "+ev.Table)
			continue
		}
		ret = append(ret, ev.Kind.String())
	}
	return ret
}

func insert(tnx int64, table string) event.Event {
	return event.NewInsert(tnx, table, record.New())
}

func TestSavepointRollback(t *testing.T) {
	log.Printf(">>> TestSavepointRollback.\n")
	assert := assert.New(t)
	sink := &sliceSink{}
	r := NewRegistry(sink)

	b := r.Begin(1)
	b.StartSavepoint()
	b.Append(insert(1, "A"))
	assert.NoError(b.RollbackSavepoint())
	b.Append(insert(1, "B"))
	b.Commit()

	assert.Equal([]string{
		"START TRANSACTION",
		"SAVEPOINT",
		"ROLLBACK SAVEPOINT",
		"INSERT B",
		"COMMIT",
	}, sink.summary())
}

func TestSavepointRelease(t *testing.T) {
	log.Printf(">>> TestSavepointRelease.\n")
	assert := assert.New(t)
	sink := &sliceSink{}
	r := NewRegistry(sink)

	b := r.Begin(1)
	b.Append(insert(1, "A"))
	b.StartSavepoint()
	b.Append(insert(1, "B"))
	b.StartSavepoint()
	b.Append(insert(1, "C"))
	assert.Equal(3, b.Depth())
	assert.NoError(b.ReleaseSavepoint())
	assert.Equal(2, b.Depth())

	// Nothing reaches the sink before commit.
	assert.Equal([]string{"START TRANSACTION"}, sink.summary())

	// The outer savepoint is still open, commit merges it.
	b.Commit()
	assert.Equal(1, b.Depth())
	assert.Equal(0, b.Len())
	assert.Equal([]string{
		"START TRANSACTION",
		"INSERT A",
		"SAVEPOINT",
		"INSERT B",
		"SAVEPOINT",
		"INSERT C",
		"RELEASE SAVEPOINT",
		"COMMIT",
	}, sink.summary())
}

func TestNoSavepoint(t *testing.T) {
	assert := assert.New(t)
	r := NewRegistry(&sliceSink{})

	b := r.Begin(1)
	assert.True(errors.Is(b.ReleaseSavepoint(), ErrNoSavepoint))
	assert.True(errors.Is(b.RollbackSavepoint(), ErrNoSavepoint))
	assert.Equal(1, b.Depth())
	assert.Equal(0, b.Len())
}

func TestRollbackAndPrepare(t *testing.T) {
	assert := assert.New(t)
	sink := &sliceSink{}
	discarded := map[int64]int{}
	r := NewRegistry(sink, WithDiscardHook(func(tnx int64, n int) { discarded[tnx] += n }))

	b := r.Begin(5)
	b.Append(insert(5, "A"))
	b.StartSavepoint()
	b.Append(insert(5, "B"))
	b.Prepare()
	assert.Equal(3, b.Len())
	b.Rollback()

	assert.Equal([]string{
		"START TRANSACTION",
		"PREPARE TRANSACTION",
		"ROLLBACK",
	}, sink.summary())
	assert.Equal(map[int64]int{5: 3}, discarded)
	assert.Equal(1, b.Depth())
}

func TestRegistry(t *testing.T) {
	log.Printf(">>> TestRegistry.\n")
	assert := assert.New(t)
	sink := &sliceSink{}
	r := NewRegistry(sink)

	_, err := r.Get(1)
	assert.True(errors.Is(err, ErrNotFound))

	b := r.Begin(1)
	got, err := r.Get(1)
	assert.NoError(err)
	assert.Same(b, got)

	// Begin again replaces.
	b.Append(insert(1, "A"))
	b2 := r.Begin(1)
	assert.NotSame(b, b2)
	assert.Equal(0, b2.Len())
	assert.Equal(1, r.Len())

	r.End(1)
	assert.Equal(0, r.Len())
	_, err = r.Get(1)
	assert.True(errors.Is(err, ErrNotFound))

	// End of an unknown number is fine.
	r.End(100)
}

func TestCleanupTransactions(t *testing.T) {
	log.Printf(">>> TestCleanupTransactions.\n")
	assert := assert.New(t)
	sink := &sliceSink{}
	r := NewRegistry(sink)

	// Empty registry: no-op.
	r.CleanupTransactions()
	assert.Len(sink.events, 0)

	for _, tnx := range []int64{30, 10, 20} {
		r.Begin(tnx).Append(insert(tnx, "T"))
	}
	sink.events = nil
	assert.Equal([]int64{10, 20, 30}, r.Tnxs())

	r.CleanupTransactions()
	assert.Equal(0, r.Len())
	assert.Len(sink.events, 3)
	for i, tnx := range []int64{10, 20, 30} {
		assert.Equal(event.Rollback, sink.events[i].Kind)
		assert.Equal(tnx, sink.events[i].Tnx)
	}
}

func TestNewRegistryNilSink(t *testing.T) {
	assert := assert.New(t)
	assert.Panics(func() { NewRegistry(nil) })
}

type countLogger struct {
	warns *int
}

func (l countLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (l countLogger) Info(msg string, keysAndValues ...interface{})  {}
func (l countLogger) Warn(msg string, keysAndValues ...interface{})  { *l.warns++ }
func (l countLogger) Error(err error, msg string, keysAndValues ...interface{}) {
}
func (l countLogger) WithValues(keysAndValues ...interface{}) logr.Logger { return l }

func TestEndedBuffer(t *testing.T) {
	log.Printf(">>> TestEndedBuffer.\n")
	assert := assert.New(t)
	sink := &sliceSink{}
	warns := 0
	r := NewRegistry(sink, WithLogger(countLogger{&warns}))

	log.Printf(">>>> Test End.\n")
	{
		b := r.Begin(1)
		b.Append(insert(1, "A"))
		r.End(1)
		assert.True(b.Ended())
		assert.Equal(0, b.Len())

		// Late calls on a forgotten transaction reach nothing.
		b.Append(insert(1, "B"))
		b.StartSavepoint()
		b.Prepare()
		b.Commit()
		b.Rollback()
		assert.True(errors.Is(b.ReleaseSavepoint(), ErrNotFound))
		assert.True(errors.Is(b.RollbackSavepoint(), ErrNotFound))
		assert.Equal(0, b.Len())
		assert.Equal([]string{"START TRANSACTION"}, sink.summary())
		assert.Equal(5, warns)
	}

	log.Printf(">>>> Test replaced by Begin.\n")
	{
		sink.events = nil
		old := r.Begin(2)
		old.Append(insert(2, "A"))
		cur := r.Begin(2)
		assert.True(old.Ended())
		assert.False(cur.Ended())

		old.Commit()
		cur.Append(insert(2, "B"))
		cur.Commit()
		r.End(2)
		assert.Equal([]string{
			"START TRANSACTION",
			"START TRANSACTION",
			"INSERT B",
			"COMMIT",
		}, sink.summary())
	}

	log.Printf(">>>> Test cleanup.\n")
	{
		sink.events = nil
		b := r.Begin(3)
		r.CleanupTransactions()
		assert.True(b.Ended())
		b.Commit()
		assert.Equal([]string{"START TRANSACTION", "ROLLBACK"}, sink.summary())
	}
}
