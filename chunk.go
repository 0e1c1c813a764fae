package cutil

// ChunksOf splits items into consecutive chunks of at most size elements.
// It returns nil when size is not positive.
func ChunksOf[T any](size int, items []T) [][]T {
	if size <= 0 {
		return nil
	}
	var chunks [][]T
	for i := 0; i < len(items); i += size {
		end := min(i+size, len(items))
		chunks = append(chunks, items[i:end])
	}
	return chunks
}

// SplitInto splits items into at most n chunks of near-equal size.
// Earlier chunks are never smaller than later ones.
func SplitInto[T any](n int, items []T) [][]T {
	if n <= 0 || len(items) == 0 {
		return nil
	}
	size := (len(items) + n - 1) / n
	return ChunksOf(size, items)
}
