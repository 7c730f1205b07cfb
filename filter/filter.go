// Package filter decides which tables are replicated.
package filter

import (
	"regexp"

	perrors "github.com/pkg/errors"
)

// TableFilter matches table names against optional include/exclude patterns.
// Patterns must match the whole name.
type TableFilter struct {
	include *regexp.Regexp
	exclude *regexp.Regexp
}

// New compiles the patterns, an empty pattern means absent.
func New(include, exclude string) (*TableFilter, error) {
	f := &TableFilter{}
	var err error
	if f.include, err = compile(include); err != nil {
		return nil, perrors.Wrap(err, "include_tables")
	}
	if f.exclude, err = compile(exclude); err != nil {
		return nil, perrors.Wrap(err, "exclude_tables")
	}
	return f, nil
}

// Match returns true if name is included and not excluded.
func (f *TableFilter) Match(name string) bool {
	if f.include != nil && !f.include.MatchString(name) {
		return false
	}
	if f.exclude != nil && f.exclude.MatchString(name) {
		return false
	}
	return true
}

func compile(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	return regexp.Compile(`^(?:` + pattern + `)$`)
}
