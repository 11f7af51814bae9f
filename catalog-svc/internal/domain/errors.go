package domain

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrUnknownProduct = errors.New("order references an unknown product")
)

// ValidationError maps request fields to what is wrong with them.
type ValidationError map[string]string

func (e ValidationError) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e[field])
	}
	return "invalid request: " + strings.Join(parts, "; ")
}
