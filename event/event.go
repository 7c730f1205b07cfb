// Package event contains the change events written to segment documents.
package event

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/huangjunwen/fbcanal/fbtypes"
	"github.com/huangjunwen/fbcanal/record"
)

// Event is a tagged union keyed by Kind. Only the fields of its kind are meaningful.
type Event struct {
	Kind Kind

	// Tnx is the owning transaction number (not for SET SEQUENCE).
	Tnx int64

	// INSERT/UPDATE/DELETE.
	Table         string
	Record        *record.Record
	OldRecord     *record.Record
	ChangedFields []string

	// EXECUTE SQL.
	SQL string

	// STORE BLOB. Data is upper case hex.
	BlobID fbtypes.Quad
	Data   string

	// SET SEQUENCE.
	Sequence string
	Value    int64
}

// NewMarker creates an event which carries only the transaction number.
// It panics if kind is not a marker kind.
func NewMarker(kind Kind, tnx int64) Event {
	if !kind.IsMarker() {
		panic(fmt.Errorf("NewMarker: %s is not a marker kind", kind))
	}
	return Event{Kind: kind, Tnx: tnx}
}

func NewInsert(tnx int64, table string, rec *record.Record) Event {
	return Event{Kind: Insert, Tnx: tnx, Table: table, Record: rec}
}

// NewUpdate creates an UPDATE event. ChangedFields are the sorted names of the
// new record's fields that are absent from, or differ from, the old record.
func NewUpdate(tnx int64, table string, oldRec, newRec *record.Record) Event {
	changed := newRec.ChangedFields(oldRec)
	sort.Strings(changed)
	return Event{
		Kind:          Update,
		Tnx:           tnx,
		Table:         table,
		Record:        newRec,
		OldRecord:     oldRec,
		ChangedFields: changed,
	}
}

func NewDelete(tnx int64, table string, rec *record.Record) Event {
	return Event{Kind: Delete, Tnx: tnx, Table: table, Record: rec}
}

func NewExecuteSQL(tnx int64, sql string) Event {
	return Event{Kind: ExecuteSQL, Tnx: tnx, SQL: sql}
}

// NewStoreBlob creates a STORE BLOB event, data is hex encoded.
func NewStoreBlob(tnx int64, id fbtypes.Quad, data []byte) Event {
	return Event{
		Kind:   StoreBlob,
		Tnx:    tnx,
		BlobID: id,
		Data:   strings.ToUpper(hex.EncodeToString(data)),
	}
}

func NewSetSequence(name string, value int64) Event {
	return Event{Kind: SetSequence, Sequence: name, Value: value}
}

// MarshalJSON renders the event with the keys of its kind, in a fixed order.
func (ev Event) MarshalJSON() ([]byte, error) {
	name := ev.Kind.String()

	switch {
	case ev.Kind == Insert, ev.Kind == Delete:
		return encode(struct {
			Event  string         `json:"event"`
			Table  string         `json:"table"`
			Tnx    int64          `json:"tnx"`
			Record *record.Record `json:"record"`
		}{name, ev.Table, ev.Tnx, nonNilRecord(ev.Record)})

	case ev.Kind == Update:
		changed := ev.ChangedFields
		if changed == nil {
			changed = []string{}
		}
		return encode(struct {
			Event         string         `json:"event"`
			Table         string         `json:"table"`
			Tnx           int64          `json:"tnx"`
			ChangedFields []string       `json:"changedFields"`
			OldRecord     *record.Record `json:"oldRecord"`
			Record        *record.Record `json:"record"`
		}{name, ev.Table, ev.Tnx, changed, nonNilRecord(ev.OldRecord), nonNilRecord(ev.Record)})

	case ev.Kind == ExecuteSQL:
		return encode(struct {
			Event string `json:"event"`
			SQL   string `json:"sql"`
			Tnx   int64  `json:"tnx"`
		}{name, ev.SQL, ev.Tnx})

	case ev.Kind == SetSequence:
		return encode(struct {
			Event    string `json:"event"`
			Sequence string `json:"sequence"`
			Value    int64  `json:"value"`
		}{name, ev.Sequence, ev.Value})

	case ev.Kind == StoreBlob:
		return encode(struct {
			Event  string `json:"event"`
			BlobID string `json:"blobId"`
			Tnx    int64  `json:"tnx"`
			Data   string `json:"data"`
		}{name, ev.BlobID.String(), ev.Tnx, ev.Data})

	case ev.Kind.IsMarker():
		return encode(struct {
			Event string `json:"event"`
			Tnx   int64  `json:"tnx"`
		}{name, ev.Tnx})

	default:
		return nil, fmt.Errorf("Event: unknown kind %d", int(ev.Kind))
	}
}

func nonNilRecord(rec *record.Record) *record.Record {
	if rec == nil {
		return record.New()
	}
	return rec
}

// encode is json.Marshal without HTML escaping.
func encode(v interface{}) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
