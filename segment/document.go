// Package segment accumulates the events of one replication segment and
// writes them as a single JSON document.
package segment

import (
	"bufio"
	"encoding/json"
	"os"

	perrors "github.com/pkg/errors"

	"github.com/huangjunwen/fbcanal/event"
)

// Document is the in-memory form of a segment file. The zero value is closed.
type Document struct {
	header *Header
	events []event.Event
}

// Open starts a new document, anything not yet written is dropped.
func (doc *Document) Open(h Header) {
	doc.header = &h
	doc.events = []event.Event{}
}

// IsOpen returns true between Open and a successful Close.
func (doc *Document) IsOpen() bool {
	return doc.header != nil
}

// Header returns the header of the open document.
func (doc *Document) Header() Header {
	doc.mustOpen("Header")
	return *doc.header
}

// Events returns events appended so far.
func (doc *Document) Events() []event.Event {
	return doc.events
}

// Append appends an event.
func (doc *Document) Append(ev event.Event) {
	doc.mustOpen("Append")
	doc.events = append(doc.events, ev)
}

// Close writes the document to path and resets it. If a file already exists at
// path nothing is written and written is false: the first write wins.
//
// On write error the document is kept and the partially written file removed.
func (doc *Document) Close(path string) (written bool, err error) {
	doc.mustOpen("Close")

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			doc.reset()
			return false, nil
		}
		return false, perrors.Wrapf(ErrIO, "create %q: %s", path, err)
	}

	if err := doc.write(f); err != nil {
		f.Close()
		os.Remove(path)
		return false, perrors.Wrapf(ErrIO, "write %q: %s", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return false, perrors.Wrapf(ErrIO, "close %q: %s", path, err)
	}

	doc.reset()
	return true, nil
}

func (doc *Document) write(f *os.File) error {
	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)

	if err := enc.Encode(struct {
		Header *Header       `json:"header"`
		Events []event.Event `json:"events"`
	}{doc.header, doc.events}); err != nil {
		return err
	}
	return w.Flush()
}

func (doc *Document) reset() {
	doc.header = nil
	doc.events = nil
}

func (doc *Document) mustOpen(op string) {
	if doc.header == nil {
		panic(perrors.Errorf("Document.%s: document is not open", op))
	}
}
