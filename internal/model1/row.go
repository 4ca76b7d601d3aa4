package model1

import "strings"

// Fields are the rendered cells of a row.
type Fields []string

// Contains checks if any field contains q, ignoring case.
func (f Fields) Contains(q string) bool {
	q = strings.ToLower(q)
	for _, v := range f {
		if strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}

// Row is a rendered record keyed by its row id.
type Row struct {
	ID     string
	Fields Fields
}
