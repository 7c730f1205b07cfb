package charset

import (
	"errors"

	perrors "github.com/pkg/errors"
)

// Converter transcodes bytes of one charset into UTF-8.
type Converter interface {
	// ToUTF8 converts src to an UTF-8 string.
	ToUTF8(src []byte) (string, error)
}

// Factory constructs the converter of a charset. It is assumed to be expensive
// (e.g. loading an encoding table).
type Factory func(id ID) (Converter, error)

// Cache memoizes one Converter per charset id for its whole lifetime.
// There is no eviction. Cache is not safe for concurrent use: the stream is
// delivered sequentially.
type Cache struct {
	factory    Factory
	converters [MaxID + 1]Converter
}

// NewCache creates a Cache. If factory is nil XTextFactory is used.
func NewCache(factory Factory) *Cache {
	if factory == nil {
		factory = XTextFactory
	}
	return &Cache{
		factory: factory,
	}
}

// GetOrCreate returns the converter of id, constructing it on first use.
// A failed construction is not remembered.
func (c *Cache) GetOrCreate(id ID) (Converter, error) {
	if id > MaxID {
		return nil, perrors.Wrapf(ErrUnsupportedCharset, "charset id %d out of range", uint32(id))
	}
	if conv := c.converters[id]; conv != nil {
		return conv, nil
	}
	conv, err := c.factory(id)
	if err != nil {
		return nil, conversionError(err, "create converter for %s", id)
	}
	c.converters[id] = conv
	return conv, nil
}

// ToUTF8 converts src from charset id to UTF-8.
func (c *Cache) ToUTF8(id ID, src []byte) (string, error) {
	conv, err := c.GetOrCreate(id)
	if err != nil {
		return "", err
	}
	s, err := conv.ToUTF8(src)
	if err != nil {
		return "", conversionError(err, "convert from %s", id)
	}
	return s, nil
}

// conversionError makes sure err is classified as ErrConversion.
func conversionError(err error, format string, args ...interface{}) error {
	if errors.Is(err, ErrConversion) {
		return perrors.Wrapf(err, format, args...)
	}
	return perrors.Wrapf(ErrConversion, format+": %s", append(args, err.Error())...)
}
