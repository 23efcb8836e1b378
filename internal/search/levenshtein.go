package search

// Levenshtein computes the classic edit distance between a and b with unit
// cost for insertion, deletion and substitution, via dynamic programming
// over a (len(b)+1) x (len(a)+1) matrix of rune positions.
func Levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)

	for j := 0; j <= len(ra); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(rb); i++ {
		curr[0] = i
		for j := 1; j <= len(ra); j++ {
			if rb[i-1] == ra[j-1] {
				curr[j] = prev[j-1]
			} else {
				curr[j] = min3(prev[j-1]+1, curr[j-1]+1, prev[j]+1)
			}
		}
		prev, curr = curr, prev
	}

	return prev[len(ra)]
}

// Similarity maps edit distance to [0,1]: (maxLen - distance) / maxLen.
// Two empty strings are fully similar.
func Similarity(a, b string) float64 {
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 1.0
	}
	return float64(longest-Levenshtein(a, b)) / float64(longest)
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
