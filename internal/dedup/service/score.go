package service

import "math"

// TokenSortRatio returns a 0..100 similarity that ignores word order:
// tokens of both strings are sorted before comparing.
func TokenSortRatio(a, b string) int {
	return ratio([]rune(scoreKey(a)), []rune(scoreKey(b)))
}

// ratio: нормированное indel-сходство в процентах, округление как у банкира.
func ratio(a, b []rune) int {
	if string(a) == string(b) {
		return 100
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	total := len(a) + len(b)
	sim := 1 - float64(indelDistance(a, b))/float64(total)
	return int(math.RoundToEven(sim * 100))
}
