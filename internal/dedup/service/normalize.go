package service

import (
	"sort"
	"strings"
	"unicode"
)

// Normalize приводит значение к нижнему регистру и срезает пробелы по краям.
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}

// scoreKey готовит строку к token-sort сравнению:
// всё, что не буква и не цифра, → пробел, затем сортировка токенов.
func scoreKey(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, s)
	return tokenSort(s)
}

// Лексикографическая сортировка токенов
func tokenSort(s string) string {
	f := strings.Fields(s)
	sort.Strings(f)
	return strings.Join(f, " ")
}
