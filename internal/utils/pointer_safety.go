package utils

// Value dereferences v, yielding the zero value for a nil pointer. Handy for
// the backend's optional fields.
func Value[T any](v *T) T {
	if v == nil {
		return *new(T)
	}
	return *v
}

// Ptr returns a pointer to v, for building partial updates in place.
func Ptr[T any](v T) *T {
	return &v
}
