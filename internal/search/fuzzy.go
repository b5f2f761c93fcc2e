package search

// Ratio returns the similarity of two strings in [0,1], computed as twice the
// number of matching characters over the total length of both strings, with
// matches found by recursively taking the longest common substring and
// matching the pieces to its left and right (Ratcliff-Obershelp). Ties on
// block length resolve to the earliest block in a, then in b. Identical
// non-empty strings score 1; an empty string against a non-empty one scores 0.
func Ratio(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	matched := matchingChars(a, b)
	return 2 * float64(matched) / float64(len(a)+len(b))
}

func matchingChars(a, b string) int {
	ai, bi, size := longestMatch(a, b)
	if size == 0 {
		return 0
	}
	return size +
		matchingChars(a[:ai], b[:bi]) +
		matchingChars(a[ai+size:], b[bi+size:])
}

// longestMatch finds the longest common substring of a and b, scanning a left
// to right and extending match runs against every occurrence of the current
// byte in b. Inputs are normalised ASCII, so byte indexing is safe.
func longestMatch(a, b string) (bestA, bestB, bestSize int) {
	positions := make(map[byte][]int, len(b))
	for j := 0; j < len(b); j++ {
		positions[b[j]] = append(positions[b[j]], j)
	}

	runLengths := make(map[int]int)
	for i := 0; i < len(a); i++ {
		next := make(map[int]int)
		for _, j := range positions[a[i]] {
			length := runLengths[j-1] + 1
			next[j] = length
			if length > bestSize {
				bestA, bestB, bestSize = i-length+1, j-length+1, length
			}
		}
		runLengths = next
	}
	return bestA, bestB, bestSize
}
