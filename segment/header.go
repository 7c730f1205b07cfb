package segment

import (
	"encoding/json"
	"fmt"
	"strings"

	perrors "github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
)

// State is the state of a replication segment.
type State int

const (
	StateFree State = iota
	StateUsed
	StateFull
	StateArchive
)

func (s State) String() string {
	switch s {
	case StateFree:
		return "free"
	case StateUsed:
		return "used"
	case StateFull:
		return "full"
	case StateArchive:
		return "archive"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Header describes a segment. It is captured once at segment start.
type Header struct {
	// Name is the segment name, the document is written to "<Name>.json".
	Name     string
	GUID     uuid.UUID
	Sequence uint64
	Version  int
	State    State
	Length   uint64
}

// ParseGUID parses a database guid, with or without the surrounding braces.
func ParseGUID(s string) (uuid.UUID, error) {
	s = strings.TrimSuffix(strings.TrimPrefix(s, "{"), "}")
	ret, err := uuid.FromString(s)
	if err != nil {
		return uuid.Nil, perrors.Wrapf(err, "ParseGUID(%q)", s)
	}
	return ret, nil
}

// FormatGUID renders guid as "{XXXXXXXX-XXXX-XXXX-XXXX-XXXXXXXXXXXX}".
func FormatGUID(guid uuid.UUID) string {
	return "{" + strings.ToUpper(guid.String()) + "}"
}

func (h Header) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Version  int    `json:"version"`
		GUID     string `json:"guid"`
		Sequence uint64 `json:"sequence"`
		State    string `json:"state"`
	}{h.Version, FormatGUID(h.GUID), h.Sequence, h.State.String()})
}
