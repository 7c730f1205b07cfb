package charset

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type upperConverter struct{}

func (upperConverter) ToUTF8(src []byte) (string, error) {
	return strings.ToUpper(string(src)), nil
}

func TestCacheMemoizes(t *testing.T) {
	assert := assert.New(t)

	created := map[ID]int{}
	cache := NewCache(func(id ID) (Converter, error) {
		created[id]++
		return upperConverter{}, nil
	})

	for i := 0; i < 3; i++ {
		s, err := cache.ToUTF8(WIN1251, []byte("abc"))
		assert.NoError(err)
		assert.Equal("ABC", s)
	}
	_, err := cache.ToUTF8(WIN1252, []byte("x"))
	assert.NoError(err)

	assert.Equal(1, created[WIN1251])
	assert.Equal(1, created[WIN1252])
}

func TestCacheFailedFactoryNotRemembered(t *testing.T) {
	assert := assert.New(t)

	calls := 0
	cache := NewCache(func(id ID) (Converter, error) {
		calls++
		return nil, errors.New("table missing")
	})

	_, err := cache.GetOrCreate(WIN1250)
	assert.True(errors.Is(err, ErrConversion))
	_, err = cache.GetOrCreate(WIN1250)
	assert.Error(err)
	assert.Equal(2, calls)

	_, err = cache.GetOrCreate(MaxID + 1)
	assert.True(errors.Is(err, ErrUnsupportedCharset))
	assert.True(errors.Is(err, ErrConversion))
}

func TestXTextFactory(t *testing.T) {
	assert := assert.New(t)

	cache := NewCache(nil)

	for _, testCase := range []struct {
		ID     ID
		Src    []byte
		Expect string
	}{
		// "Привет" in windows-1251.
		{WIN1251, []byte{0xCF, 0xF0, 0xE8, 0xE2, 0xE5, 0xF2}, "Привет"},
		// "Привет" in koi8-r.
		{KOI8R, []byte{0xF0, 0xD2, 0xC9, 0xD7, 0xC5, 0xD4}, "Привет"},
		// "café" in latin1.
		{ISO8859_1, []byte{'c', 'a', 'f', 0xE9}, "café"},
		{WIN1252, []byte{0x80}, "€"},
		{ASCII, []byte("plain"), "plain"},
		{UnicodeFSS, []byte("ünï"), "ünï"},
		{WIN1250, nil, ""},
	} {
		s, err := cache.ToUTF8(testCase.ID, testCase.Src)
		assert.NoError(err, testCase.ID.String())
		assert.Equal(testCase.Expect, s, testCase.ID.String())
	}

	_, err := cache.ToUTF8(DOS737, []byte("x"))
	assert.True(errors.Is(err, ErrUnsupportedCharset))

	_, err = cache.ToUTF8(ASCII, []byte{0xFF})
	assert.True(errors.Is(err, ErrConversion))
}

func TestNames(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("WIN1251", WIN1251.String())
	assert.Equal("KSC_5601", KSC5601.String())
	assert.Equal("CHARSET(200)", ID(200).String())

	id, ok := ByName("GB18030")
	assert.True(ok)
	assert.Equal(GB18030, id)
	_, ok = ByName("EBCDIC")
	assert.False(ok)

	assert.True(UTF8.IsPassthrough())
	assert.True(None.IsPassthrough())
	assert.False(Octets.IsPassthrough())
}

func TestPassthrough(t *testing.T) {
	assert := assert.New(t)

	for _, testCase := range []struct {
		ID     ID
		Src    []byte
		Expect string
		Err    bool
	}{
		{UTF8, []byte("Привет"), "Привет", false},
		{None, []byte("plain"), "plain", false},
		{None, []byte{}, "", false},
		{None, []byte{0xc4, 0xe4}, "", true},
		{UTF8, []byte{'a', 0xff}, "", true},
	} {
		s, err := Passthrough(testCase.ID, testCase.Src)
		if testCase.Err {
			assert.True(errors.Is(err, ErrConversion), "%v", testCase.Src)
			continue
		}
		assert.NoError(err)
		assert.Equal(testCase.Expect, s)
	}
}
