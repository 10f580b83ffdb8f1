package at

// CheckBounds validates index against the half-open range [0, length). It is
// exported so user collections can raise the same failure the dispatcher
// raises for the generic strategies.
func CheckBounds(index, length int) error {
	if index < 0 || index >= length {
		return &RangeError{Index: index, Length: length}
	}
	return nil
}

// InRange reports whether index falls inside [0, length).
func InRange(index, length int) bool {
	return index >= 0 && index < length
}
