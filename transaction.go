package fbcanal

import (
	"strings"
	"unicode"

	"github.com/huangjunwen/fbcanal/charset"
	"github.com/huangjunwen/fbcanal/event"
	"github.com/huangjunwen/fbcanal/fbtypes"
	"github.com/huangjunwen/fbcanal/logr"
	"github.com/huangjunwen/fbcanal/record"
	"github.com/huangjunwen/fbcanal/txn"
)

// Transaction receives notifications of one replicated transaction.
type Transaction struct {
	p      *Plugin
	buf    *txn.Buffer
	logger logr.Logger
}

func (p *Plugin) newTransaction(buf *txn.Buffer) *Transaction {
	return &Transaction{
		p:      p,
		buf:    buf,
		logger: p.logger.WithValues("tnx", buf.Tnx()),
	}
}

// Tnx returns the transaction number.
func (t *Transaction) Tnx() int64 {
	return t.buf.Tnx()
}

func (t *Transaction) Prepare() {
	t.buf.Prepare()
}

func (t *Transaction) Commit() {
	t.buf.Commit()
}

func (t *Transaction) Rollback() {
	t.buf.Rollback()
}

func (t *Transaction) StartSavepoint() {
	t.buf.StartSavepoint()
}

// ReleaseSavepoint returns txn.ErrNoSavepoint if no savepoint is open.
func (t *Transaction) ReleaseSavepoint() error {
	return t.buf.ReleaseSavepoint()
}

// RollbackSavepoint returns txn.ErrNoSavepoint if no savepoint is open.
func (t *Transaction) RollbackSavepoint() error {
	return t.buf.RollbackSavepoint()
}

// InsertRecord decodes rec and buffers an INSERT event.
func (t *Transaction) InsertRecord(table string, rec record.Source) error {
	if !t.hasFormat("insert", table, rec) {
		return nil
	}
	r, err := t.decode(table, rec)
	if err != nil {
		return err
	}
	t.buf.Append(event.NewInsert(t.Tnx(), table, r))
	return nil
}

// UpdateRecord decodes both images and buffers an UPDATE event.
func (t *Transaction) UpdateRecord(table string, oldRec, newRec record.Source) error {
	if !t.hasFormat("update", table, oldRec) || !t.hasFormat("update", table, newRec) {
		return nil
	}
	oldR, err := t.decode(table, oldRec)
	if err != nil {
		return err
	}
	newR, err := t.decode(table, newRec)
	if err != nil {
		return err
	}
	t.buf.Append(event.NewUpdate(t.Tnx(), table, oldR, newR))
	return nil
}

// DeleteRecord decodes rec and buffers a DELETE event.
func (t *Transaction) DeleteRecord(table string, rec record.Source) error {
	if !t.hasFormat("delete", table, rec) {
		return nil
	}
	r, err := t.decode(table, rec)
	if err != nil {
		return err
	}
	t.buf.Append(event.NewDelete(t.Tnx(), table, r))
	return nil
}

// ExecuteSQL buffers an EXECUTE SQL event of UTF-8 sql.
func (t *Transaction) ExecuteSQL(sql string) {
	if !t.p.cfg.RegisterDDLEvents {
		return
	}
	t.buf.Append(event.NewExecuteSQL(t.Tnx(), sql))
}

// ExecuteSQLIntl converts sql from cs to UTF-8, trims trailing white spaces and
// buffers an EXECUTE SQL event.
func (t *Transaction) ExecuteSQLIntl(cs charset.ID, sql []byte) error {
	if !t.p.cfg.RegisterDDLEvents {
		return nil
	}
	var (
		s   string
		err error
	)
	if cs.IsPassthrough() {
		s, err = charset.Passthrough(cs, sql)
	} else {
		s, err = t.p.charsets.ToUTF8(cs, sql)
	}
	if err != nil {
		t.logger.Error(err, "convert sql failed", "charset", cs.String())
		return err
	}
	t.buf.Append(event.NewExecuteSQL(t.Tnx(), strings.TrimRightFunc(s, unicode.IsSpace)))
	return nil
}

// StoreBlob buffers a STORE BLOB event if blobs are dumped. Empty blobs are ignored.
func (t *Transaction) StoreBlob(id fbtypes.Quad, data []byte) {
	if !t.p.cfg.DumpBlobs || len(data) == 0 {
		return
	}
	t.buf.Append(event.NewStoreBlob(t.Tnx(), id, data))
}

func (t *Transaction) hasFormat(op, table string, rec record.Source) bool {
	if rec.Count() == 0 {
		t.logger.Warn("record format not found, skipped", "op", op, "table", table)
		return false
	}
	return true
}

func (t *Transaction) decode(table string, rec record.Source) (*record.Record, error) {
	r, err := t.p.decoder.Decode(rec)
	if err != nil {
		t.p.metrics.decodeFailed()
		t.logger.Error(err, "decode record failed", "table", table)
		return nil, err
	}
	return r, nil
}
