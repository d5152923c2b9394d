package model

// Record is one data row of a source table, keyed by header name.
type Record map[string]string

// Get returns the value of field and whether the field exists.
func (r Record) Get(field string) (string, bool) {
	v, ok := r[field]
	return v, ok
}

// Value returns the value of field, or "" when absent.
func (r Record) Value(field string) string {
	return r[field]
}
