// Package fbcanal is a CDC (Change Data Capture) library for Firebird replication
// streams. It renders committed changes of each replication segment as one JSON
// document.
//
// The host (the replication engine) drives a Plugin with notifications in stream
// order:
//   - StartSegment/FinishSegment around every segment
//   - StartTransaction and then Prepare/Commit/Rollback/savepoints on the returned Transaction
//   - InsertRecord/UpdateRecord/DeleteRecord/ExecuteSQL/StoreBlob inside transactions
//   - SetSequence outside transactions
//   - CleanupTransaction(s) to forget transactions
//
// Events of a transaction are buffered until commit, so events of rolled back
// savepoints never reach the output. The document of a segment is written to
// "<outputDir>/<segment name>.json":
//
//   {
//       "header": {"version": 1, "guid": "{...}", "sequence": 1, "state": "full"},
//       "events": [
//           {"event": "START TRANSACTION", "tnx": 1},
//           {"event": "INSERT", "table": "T", "tnx": 1, "record": {...}},
//           {"event": "COMMIT", "tnx": 1}
//       ]
//   }
//
// Column values:
//
//   - Scaled integers, INT128 and DECFLOAT are returned as string to keep precision.
//   - CHAR fields are right trimmed, VARCHAR fields are not.
//   - OCTETS text fields are returned as upper case hex.
//   - BLOB fields are returned as "high:low" blob ids, the content is a separate
//     STORE BLOB event when dumpBlobs is on.
//   - ARRAY fields are not supported.
//
// A Plugin is not safe for concurrent use.
package fbcanal
