// Package charset maps Firebird character set ids to UTF-8 converters.
package charset

import (
	"fmt"
	"unicode/utf8"

	perrors "github.com/pkg/errors"
)

// ID is a Firebird character set id (RDB$CHARACTER_SET_ID).
type ID uint32

// Firebird character set ids.
const (
	None       ID = 0
	Octets     ID = 1
	ASCII      ID = 2
	UnicodeFSS ID = 3
	UTF8       ID = 4
	SJIS       ID = 5
	EUCJ       ID = 6
	DOS737     ID = 9
	DOS437     ID = 10
	DOS850     ID = 11
	DOS865     ID = 12
	DOS860     ID = 13
	DOS863     ID = 14
	DOS775     ID = 15
	DOS858     ID = 16
	DOS862     ID = 17
	DOS864     ID = 18
	ISO8859_1  ID = 21
	ISO8859_2  ID = 22
	ISO8859_3  ID = 23
	ISO8859_4  ID = 34
	ISO8859_5  ID = 35
	ISO8859_6  ID = 36
	ISO8859_7  ID = 37
	ISO8859_8  ID = 38
	ISO8859_9  ID = 39
	ISO8859_13 ID = 40
	KSC5601    ID = 44
	DOS852     ID = 45
	DOS857     ID = 46
	DOS861     ID = 47
	DOS866     ID = 48
	DOS869     ID = 49
	CYRL       ID = 50
	WIN1250    ID = 51
	WIN1251    ID = 52
	WIN1252    ID = 53
	WIN1253    ID = 54
	WIN1254    ID = 55
	BIG5       ID = 56
	GB2312     ID = 57
	WIN1255    ID = 58
	WIN1256    ID = 59
	WIN1257    ID = 60
	KOI8R      ID = 63
	KOI8U      ID = 64
	WIN1258    ID = 65
	TIS620     ID = 66
	GBK        ID = 67
	CP943C     ID = 68
	GB18030    ID = 69
)

// MaxID is the largest id the cache can hold.
const MaxID ID = 255

var names = map[ID]string{
	None:       "NONE",
	Octets:     "OCTETS",
	ASCII:      "ASCII",
	UnicodeFSS: "UNICODE_FSS",
	UTF8:       "UTF8",
	SJIS:       "SJIS",
	EUCJ:       "EUCJ",
	DOS737:     "DOS737",
	DOS437:     "DOS437",
	DOS850:     "DOS850",
	DOS865:     "DOS865",
	DOS860:     "DOS860",
	DOS863:     "DOS863",
	DOS775:     "DOS775",
	DOS858:     "DOS858",
	DOS862:     "DOS862",
	DOS864:     "DOS864",
	ISO8859_1:  "ISO8859_1",
	ISO8859_2:  "ISO8859_2",
	ISO8859_3:  "ISO8859_3",
	ISO8859_4:  "ISO8859_4",
	ISO8859_5:  "ISO8859_5",
	ISO8859_6:  "ISO8859_6",
	ISO8859_7:  "ISO8859_7",
	ISO8859_8:  "ISO8859_8",
	ISO8859_9:  "ISO8859_9",
	ISO8859_13: "ISO8859_13",
	KSC5601:    "KSC_5601",
	DOS852:     "DOS852",
	DOS857:     "DOS857",
	DOS861:     "DOS861",
	DOS866:     "DOS866",
	DOS869:     "DOS869",
	CYRL:       "CYRL",
	WIN1250:    "WIN1250",
	WIN1251:    "WIN1251",
	WIN1252:    "WIN1252",
	WIN1253:    "WIN1253",
	WIN1254:    "WIN1254",
	BIG5:       "BIG_5",
	GB2312:     "GB_2312",
	WIN1255:    "WIN1255",
	WIN1256:    "WIN1256",
	WIN1257:    "WIN1257",
	KOI8R:      "KOI8R",
	KOI8U:      "KOI8U",
	WIN1258:    "WIN1258",
	TIS620:     "TIS620",
	GBK:        "GBK",
	CP943C:     "CP943C",
	GB18030:    "GB18030",
}

// String returns the Firebird name of the charset.
func (id ID) String() string {
	if name, ok := names[id]; ok {
		return name
	}
	return fmt.Sprintf("CHARSET(%d)", uint32(id))
}

// IsPassthrough reports whether text in this charset is emitted as is.
func (id ID) IsPassthrough() bool {
	return id == UTF8 || id == None
}

// Passthrough returns text of a passthrough charset as is. Bytes which are not
// valid UTF-8 are an ErrConversion.
func Passthrough(id ID, src []byte) (string, error) {
	if !utf8.Valid(src) {
		return "", perrors.Wrapf(ErrConversion, "%s: invalid UTF-8 input", id)
	}
	return string(src), nil
}

// ByName returns the id of a Firebird charset name.
func ByName(name string) (ID, bool) {
	for id, n := range names {
		if n == name {
			return id, true
		}
	}
	return 0, false
}
