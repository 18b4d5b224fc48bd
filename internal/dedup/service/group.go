package service

import (
	"sort"

	"dedup-service/internal/dedup/model"
)

// Grouper кластеризует строки по нечеткому совпадению значений одной колонки.
type Grouper struct {
	Threshold int // 0..100
	Limit     int // 0: сравнивать с каждой строкой
}

const missingText = "nan"

type entry struct {
	value string // нормализованное значение
	key   []rune // токены, отсортированные для сравнения
	index int
}

// FindDuplicateGroups groups rows of column whose values score at least threshold
// against each other. The column is normalized in place on t.
func FindDuplicateGroups(t *model.Table, column string, threshold int) ([]model.Group, error) {
	return Grouper{Threshold: threshold}.Find(t, column)
}

// Find normalizes the column in place, then runs one greedy pass in row order.
// A candidate group that touches an already claimed row is dropped as a whole.
func (g Grouper) Find(t *model.Table, column string) ([]model.Group, error) {
	if g.Threshold < 0 || g.Threshold > 100 {
		return nil, &model.InvalidThresholdError{Threshold: g.Threshold}
	}
	col, ok := t.Column(column)
	if !ok {
		return nil, &model.UnknownColumnError{Column: column}
	}

	// 1) нормализация на месте; пропуск получает текст "nan",
	// чтобы не совпадать со строками из одной пунктуации (у них пустой ключ)
	for i := range col.Cells {
		if !col.Cells[i].Valid {
			col.Cells[i].Value = missingText
			continue
		}
		col.Cells[i].Value = Normalize(col.Cells[i].Value)
	}

	// 2) записи в исходном порядке + индекс «значение → строки»
	entries := make([]entry, len(col.Cells))
	byValue := make(map[string][]int)
	keys := make(map[string][]rune)
	for i, c := range col.Cells {
		k, ok := keys[c.Value]
		if !ok {
			k = []rune(scoreKey(c.Value))
			keys[c.Value] = k
		}
		entries[i] = entry{value: c.Value, key: k, index: i}
		byValue[c.Value] = append(byValue[c.Value], i)
	}

	// 3) жадный проход с учётом уже занятых строк
	processed := make(map[int]struct{})
	var groups []model.Group
	for _, e := range entries {
		if _, done := processed[e.index]; done {
			continue
		}
		cand := candidates(entries, byValue, e, g.Threshold, g.Limit)
		if len(cand) < 2 || anyProcessed(cand, processed) {
			continue
		}
		groups = append(groups, model.Group(cand))
		for _, i := range cand {
			processed[i] = struct{}{}
		}
	}
	return groups, nil
}

type scored struct {
	value string
	score int
}

// candidates scores seed against every entry and returns, ascending, all rows
// carrying a value that reached the threshold.
func candidates(entries []entry, byValue map[string][]int, seed entry, threshold, limit int) []int {
	memo := make(map[string]int)
	all := make([]scored, 0, len(entries))
	for _, e := range entries {
		s, ok := memo[e.value]
		if !ok {
			s = ratio(seed.key, e.key)
			memo[e.value] = s
		}
		all = append(all, scored{value: e.value, score: s})
	}
	if limit > 0 && limit < len(all) {
		sort.SliceStable(all, func(i, j int) bool { return all[i].score > all[j].score })
		all = all[:limit]
	}

	seen := make(map[int]struct{})
	var out []int
	for _, s := range all {
		if s.score < threshold {
			continue
		}
		for _, i := range byValue[s.value] {
			if _, dup := seen[i]; !dup {
				seen[i] = struct{}{}
				out = append(out, i)
			}
		}
	}
	sort.Ints(out)
	return out
}

func anyProcessed(idx []int, processed map[int]struct{}) bool {
	for _, i := range idx {
		if _, ok := processed[i]; ok {
			return true
		}
	}
	return false
}
