package event

import (
	"fmt"
)

// Kind is the type of an Event.
type Kind int

const (
	SetSequence Kind = iota + 1
	StartTransaction
	PrepareTransaction
	Commit
	Rollback
	Savepoint
	ReleaseSavepoint
	RollbackSavepoint
	ExecuteSQL
	StoreBlob
	Insert
	Update
	Delete
)

var kindNames = map[Kind]string{
	SetSequence:        "SET SEQUENCE",
	StartTransaction:   "START TRANSACTION",
	PrepareTransaction: "PREPARE TRANSACTION",
	Commit:             "COMMIT",
	Rollback:           "ROLLBACK",
	Savepoint:          "SAVEPOINT",
	ReleaseSavepoint:   "RELEASE SAVEPOINT",
	RollbackSavepoint:  "ROLLBACK SAVEPOINT",
	ExecuteSQL:         "EXECUTE SQL",
	StoreBlob:          "STORE BLOB",
	Insert:             "INSERT",
	Update:             "UPDATE",
	Delete:             "DELETE",
}

// String returns the name used in the "event" key.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("KIND(%d)", int(k))
}

// IsMarker returns true for kinds carrying nothing but the transaction number.
func (k Kind) IsMarker() bool {
	switch k {
	case StartTransaction, PrepareTransaction, Commit, Rollback, Savepoint, ReleaseSavepoint, RollbackSavepoint:
		return true
	}
	return false
}

// IsDML returns true for INSERT/UPDATE/DELETE.
func (k Kind) IsDML() bool {
	return k == Insert || k == Update || k == Delete
}
