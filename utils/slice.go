package utils

func Filter[T any](src []T, predicate func(T) bool) []T {
	dst := make([]T, 0, len(src))
	for _, item := range src {
		if predicate(item) {
			dst = append(dst, item)
		}
	}
	return dst
}

func Map[T any, U any](src []T, mapper func(T) U) []U {
	dst := make([]U, 0, len(src))
	for _, item := range src {
		dst = append(dst, mapper(item))
	}
	return dst
}

// FindLast returns the index of the last item matching predicate, or -1.
func FindLast[T any](items []T, predicate func(T) bool) int {
	for i := len(items) - 1; i >= 0; i-- {
		if predicate(items[i]) {
			return i
		}
	}
	return -1
}
