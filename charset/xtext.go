package charset

import (
	"unicode/utf8"

	perrors "github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

// NOTE: x/text has no tables for DOS737, DOS775, DOS857, DOS861, DOS864 and DOS869,
// XTextFactory returns ErrUnsupportedCharset for them.
var xtextEncodings = map[ID]encoding.Encoding{
	None:       encoding.Nop,
	ASCII:      encoding.Nop,
	UnicodeFSS: unicode.UTF8,
	UTF8:       unicode.UTF8,
	SJIS:       japanese.ShiftJIS,
	EUCJ:       japanese.EUCJP,
	CP943C:     japanese.ShiftJIS,
	DOS437:     charmap.CodePage437,
	DOS850:     charmap.CodePage850,
	DOS852:     charmap.CodePage852,
	DOS858:     charmap.CodePage858,
	DOS860:     charmap.CodePage860,
	DOS862:     charmap.CodePage862,
	DOS863:     charmap.CodePage863,
	DOS865:     charmap.CodePage865,
	DOS866:     charmap.CodePage866,
	ISO8859_1:  charmap.ISO8859_1,
	ISO8859_2:  charmap.ISO8859_2,
	ISO8859_3:  charmap.ISO8859_3,
	ISO8859_4:  charmap.ISO8859_4,
	ISO8859_5:  charmap.ISO8859_5,
	ISO8859_6:  charmap.ISO8859_6,
	ISO8859_7:  charmap.ISO8859_7,
	ISO8859_8:  charmap.ISO8859_8,
	ISO8859_9:  charmap.ISO8859_9,
	ISO8859_13: charmap.ISO8859_13,
	KSC5601:    korean.EUCKR,
	CYRL:       charmap.Windows1251,
	WIN1250:    charmap.Windows1250,
	WIN1251:    charmap.Windows1251,
	WIN1252:    charmap.Windows1252,
	WIN1253:    charmap.Windows1253,
	WIN1254:    charmap.Windows1254,
	WIN1255:    charmap.Windows1255,
	WIN1256:    charmap.Windows1256,
	WIN1257:    charmap.Windows1257,
	WIN1258:    charmap.Windows1258,
	BIG5:       traditionalchinese.Big5,
	GB2312:     simplifiedchinese.GBK,
	GBK:        simplifiedchinese.GBK,
	GB18030:    simplifiedchinese.GB18030,
	KOI8R:      charmap.KOI8R,
	KOI8U:      charmap.KOI8U,
	TIS620:     charmap.Windows874,
}

type xtextConverter struct {
	id      ID
	decoder *encoding.Decoder
}

var (
	_ Converter = (*xtextConverter)(nil)
)

// XTextFactory creates converters backed by golang.org/x/text encodings.
func XTextFactory(id ID) (Converter, error) {
	enc, ok := xtextEncodings[id]
	if !ok {
		return nil, perrors.Wrapf(ErrUnsupportedCharset, "no encoding for %s", id)
	}
	return &xtextConverter{
		id:      id,
		decoder: enc.NewDecoder(),
	}, nil
}

func (conv *xtextConverter) ToUTF8(src []byte) (string, error) {
	if len(src) == 0 {
		return "", nil
	}
	out, err := conv.decoder.Bytes(src)
	if err != nil {
		return "", perrors.Wrapf(ErrConversion, "%s: %s", conv.id, err)
	}
	// encoding.Nop passes bytes through untouched.
	if !utf8.Valid(out) {
		return "", perrors.Wrapf(ErrConversion, "%s: invalid UTF-8 output", conv.id)
	}
	return string(out), nil
}
