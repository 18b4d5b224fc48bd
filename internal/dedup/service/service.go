package service

import (
	"time"

	"github.com/rs/zerolog"

	"dedup-service/internal/dedup/model"
)

// Run: основной сценарий: выбрать колонку, сгруппировать дубли, собрать строки групп.
// Таблица t не меняется: нормализация идёт на копии.
func Run(t *model.Table, opt model.Options, logger zerolog.Logger) (model.Result, error) {
	start := time.Now()

	column, strategy := "", StrategyExplicit
	if opt.Column != "" {
		resolved, ok := ResolveColumn(t, opt.Column)
		if !ok {
			return model.Result{}, &model.UnknownColumnError{Column: opt.Column}
		}
		column = resolved
	} else {
		var err error
		column, strategy, err = Selector{Keywords: opt.Keywords}.Select(t)
		if err != nil {
			return model.Result{}, err
		}
	}

	groups, err := Grouper{Threshold: opt.Threshold, Limit: opt.Limit}.Find(t.Clone(), column)
	if err != nil {
		return model.Result{}, err
	}

	res := model.Result{
		Column:    column,
		Strategy:  strategy,
		Threshold: opt.Threshold,
		Limit:     opt.Limit,
		Rows:      t.NumRows(),
		Columns:   t.Names(),
		Groups:    make([]model.GroupResult, 0, len(groups)),
	}
	for _, g := range groups {
		rows := make([]map[string]string, 0, len(g))
		for _, i := range g {
			rows = append(rows, t.Row(i))
		}
		res.Groups = append(res.Groups, model.GroupResult{Indices: g, Rows: rows})
	}

	logger.Info().
		Str("column", column).
		Str("strategy", strategy).
		Int("threshold", opt.Threshold).
		Int("rows", res.Rows).
		Int("groups", len(res.Groups)).
		Int("dup_rows", res.DuplicateRows()).
		Dur("elapsed", time.Since(start)).
		Msg("dedup done")
	return res, nil
}
