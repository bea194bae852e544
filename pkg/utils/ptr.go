package utils

// Ptr returns a pointer to the provided value v.
// This is useful for creating pointers to literals or temporary values.
func Ptr[T any](v T) *T {
	return &v
}

// ValueOr returns the value p points to, or fallback when p is nil. Optional settings
// decoded from configuration files use it to tell "unset" apart from the zero value.
func ValueOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}

	return *p
}
