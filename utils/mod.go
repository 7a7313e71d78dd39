package utils

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// Without returns the items of slice that are not keys of exclude, keeping
// the order of slice.
func Without[T comparable, V any](slice []T, exclude map[T]V) []T {
	out := make([]T, 0, len(slice))
	for _, v := range slice {
		if _, ok := exclude[v]; !ok {
			out = append(out, v)
		}
	}
	return out
}
