package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	assert := assert.New(t)

	for _, testCase := range []struct {
		Include string
		Exclude string
		Name    string
		Expect  bool
	}{
		{"^CUSTOMER.*", ".*_LOG$", "CUSTOMER_LOG", false},
		{"^CUSTOMER.*", ".*_LOG$", "CUSTOMERS", true},
		{"^CUSTOMER.*", ".*_LOG$", "ORDERS", false},
		{"", "", "ANYTHING", true},
		{"", "RDB\\$.*", "RDB$PAGES", false},
		{"", "RDB\\$.*", "ORDERS", true},
		// Whole name must match.
		{"CUSTOMER", "", "CUSTOMERS", false},
		{"CUSTOMER|ORDERS", "", "ORDERS", true},
		{"CUSTOMER|ORDERS", "", "ORDERS_2", false},
	} {
		f, err := New(testCase.Include, testCase.Exclude)
		assert.NoError(err)
		assert.Equal(testCase.Expect, f.Match(testCase.Name), "%+v", testCase)
	}
}

func TestMalformed(t *testing.T) {
	assert := assert.New(t)

	_, err := New("(", "")
	assert.Error(err)
	assert.Contains(err.Error(), "include_tables")

	_, err = New("", "[a-")
	assert.Error(err)
	assert.Contains(err.Error(), "exclude_tables")
}
