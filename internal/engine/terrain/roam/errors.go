package roam

import "errors"

// Configuration errors returned by constructors.
var (
	ErrNotPowerOfTwo = errors.New("patch size is not a positive power of two")
	ErrGridMismatch  = errors.New("grid dimensions do not divide into patches")
	ErrPatchTooLarge = errors.New("patch size exceeds terrain extent")
)

// isPowerOfTwo reports whether v is a positive power of two.
func isPowerOfTwo(v int) bool {
	return v > 0 && v&(v-1) == 0
}

// log2 returns floor(log2(v)) for v > 0.
func log2(v int) int {
	n := 0
	for v > 1 {
		v >>= 1
		n++
	}
	return n
}
