package events

// Filter wraps fn so it only sees messages accepted by keep.
func Filter[T any](keep func(T) bool, fn func(T)) func(T) {
	return func(msg T) {
		if keep(msg) {
			fn(msg)
		}
	}
}
