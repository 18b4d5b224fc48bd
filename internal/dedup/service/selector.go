package service

import (
	"strings"

	"dedup-service/internal/dedup/model"
)

const (
	StrategyKeyword      = "keyword"
	StrategyCardinality  = "cardinality"
	StrategyFirstTextual = "first-textual"
	StrategyExplicit     = "explicit"
)

// DefaultKeywords: подстроки в имени колонки, которые выдают «наименование».
var DefaultKeywords = []string{"name", "title", "product", "item", "description"}

// Strategy: одна ступень выбора колонки; ok=false передаёт ход следующей.
type Strategy struct {
	Name string
	Pick func(t *model.Table) (column string, ok bool)
}

// Selector перебирает стратегии по порядку, первая удачная побеждает.
type Selector struct {
	Keywords []string
}

func (s Selector) Strategies() []Strategy {
	kw := s.Keywords
	if len(kw) == 0 {
		kw = DefaultKeywords
	}
	return []Strategy{
		{Name: StrategyKeyword, Pick: KeywordMatch(kw)},
		{Name: StrategyCardinality, Pick: MaxCardinality},
		{Name: StrategyFirstTextual, Pick: FirstTextual},
	}
}

// Select returns the chosen column and the name of the strategy that chose it.
func (s Selector) Select(t *model.Table) (string, string, error) {
	for _, st := range s.Strategies() {
		if col, ok := st.Pick(t); ok {
			return col, st.Name, nil
		}
	}
	return "", "", &model.NoSuitableColumnError{}
}

// SelectColumn picks the entity-label column with the default keywords.
func SelectColumn(t *model.Table) (string, error) {
	col, _, err := Selector{}.Select(t)
	return col, err
}

// KeywordMatch: первая слева колонка, имя которой (без учёта регистра) содержит ключевое слово.
// Тип колонки здесь не проверяется.
func KeywordMatch(keywords []string) func(*model.Table) (string, bool) {
	kw := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			kw = append(kw, k)
		}
	}
	return func(t *model.Table) (string, bool) {
		for _, c := range t.Columns {
			name := strings.ToLower(c.Name)
			for _, k := range kw {
				if strings.Contains(name, k) {
					return c.Name, true
				}
			}
		}
		return "", false
	}
}

// MaxCardinality: текстовая колонка с наибольшим числом различных сырых значений.
// При равенстве остаётся первая встреченная.
func MaxCardinality(t *model.Table) (string, bool) {
	best, bestN := "", -1
	for i := range t.Columns {
		c := &t.Columns[i]
		if c.Kind() != model.KindTextual {
			continue
		}
		if n := c.Distinct(); n > bestN {
			best, bestN = c.Name, n
		}
	}
	return best, bestN >= 0
}

func FirstTextual(t *model.Table) (string, bool) {
	for i := range t.Columns {
		if t.Columns[i].Kind() == model.KindTextual {
			return t.Columns[i].Name, true
		}
	}
	return "", false
}
