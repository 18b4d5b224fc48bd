package service

import (
	"regexp"
	"strings"

	"dedup-service/internal/dedup/model"
)

var reHeaderJunk = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// нормализуем имя колонки: нижний регистр, убираем служ.символы/множественные пробелы/ё→е
func normHeaderKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("\u00A0", " ", "\u202F", " ", "ё", "е").Replace(s)
	s = reHeaderJunk.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// ResolveColumn ищет реальное имя колонки по желаемому.
// Поддерживает варианты через "|" (например: "Наименование|Номенклатура").
// Порядок: точное совпадение, совпадение после нормализации, вхождение одного в другое
// (самое длинное совпадение, при равенстве: левая колонка).
func ResolveColumn(t *model.Table, want string) (string, bool) {
	want = strings.TrimSpace(want)
	if want == "" {
		return "", false
	}
	alts := strings.Split(want, "|")
	for i := range alts {
		alts[i] = strings.TrimSpace(alts[i])
	}

	for _, a := range alts {
		if _, ok := t.Column(a); ok {
			return a, true
		}
	}

	norm := make([]string, 0, len(alts))
	for _, a := range alts {
		if n := normHeaderKey(a); n != "" {
			norm = append(norm, n)
		}
	}
	for _, c := range t.Columns {
		nk := normHeaderKey(c.Name)
		for _, n := range norm {
			if nk == n {
				return c.Name, true
			}
		}
	}

	// частичное: want ⊂ key или key ⊂ want
	best, bestScore := "", 0
	for _, c := range t.Columns {
		nk := normHeaderKey(c.Name)
		if nk == "" {
			continue
		}
		score := 0
		for _, n := range norm {
			if strings.Contains(nk, n) || strings.Contains(n, nk) {
				score = max(score, len(n))
			}
		}
		if score > bestScore {
			best, bestScore = c.Name, score
		}
	}
	return best, best != ""
}
