package util

// Map applies fn to every element of s and returns the results in a new slice.
func Map[A any, B any](s []A, fn func(A, uint64) B) []B {
	out := make([]B, len(s))
	for i, v := range s {
		out[i] = fn(v, uint64(i))
	}
	return out
}

// CloneBytes returns a copy of b that shares no memory with it. A nil input stays nil.
func CloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
