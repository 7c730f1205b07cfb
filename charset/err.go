package charset

import (
	"errors"
	"fmt"
)

var (
	// ErrConversion is returned when bytes can not be transcoded to UTF-8.
	ErrConversion = errors.New("Charset: Conversion error")

	// ErrUnsupportedCharset is returned when no converter exists for a charset id.
	// errors.Is(ErrUnsupportedCharset, ErrConversion) holds.
	ErrUnsupportedCharset = fmt.Errorf("%w: Unsupported charset", ErrConversion)
)
