package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"dedup-service/internal/dedup/model"
	"dedup-service/internal/dedup/service"
	"dedup-service/internal/fileio"
)

var flagJSON bool

var scanCmd = &cobra.Command{
	Use:   "scan <file>",
	Short: "Find duplicate groups in one table file",
	Args:  cobra.ExactArgs(1),
	RunE:  runScan,
}

func init() {
	addDedupFlags(scanCmd)
	scanCmd.Flags().BoolVar(&flagJSON, "json", false, "print the result as JSON")
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	res, err := scanFile(args[0], flagHeaderRow, options(cmd, cfg), logger)
	if err != nil {
		return err
	}
	if flagJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	writeText(cmd.OutOrStdout(), res)
	return nil
}

func scanFile(path string, headerRow int, opt model.Options, logger zerolog.Logger) (model.Result, error) {
	tbl, err := fileio.ReadFile(path, headerRow)
	if err != nil {
		return model.Result{}, err
	}
	res, err := service.Run(tbl, opt, logger.With().Str("file", path).Logger())
	if err != nil {
		return model.Result{}, err
	}
	res.File = filepath.Base(path)
	return res, nil
}

// writeText: шапка, затем каждая группа: строки таблицы через таб, первым столбцом номер строки.
func writeText(w io.Writer, res model.Result) {
	fmt.Fprintf(w, "column: %s (%s), threshold %d, rows %d, groups %d, duplicate rows %d\n",
		res.Column, res.Strategy, res.Threshold, res.Rows, len(res.Groups), res.DuplicateRows())
	if len(res.Groups) == 0 {
		return
	}
	fmt.Fprintf(w, "row\t%s\n", strings.Join(res.Columns, "\t"))
	for n, g := range res.Groups {
		fmt.Fprintf(w, "\n# group %d\n", n+1)
		for k, idx := range g.Indices {
			vals := make([]string, len(res.Columns))
			for c, name := range res.Columns {
				vals[c] = g.Rows[k][name]
			}
			fmt.Fprintf(w, "%d\t%s\n", idx, strings.Join(vals, "\t"))
		}
	}
}
