package cmd

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"dedup-service/internal/config"
	"dedup-service/internal/dedup/model"
	"dedup-service/internal/store"
)

var rootCmd = &cobra.Command{
	Use:           "dedup",
	Short:         "dedup: find near-duplicate rows in tables",
	Long:          "Picks the most name-like column of a CSV/XLSX/XLS/SQLite table and groups rows whose values are fuzzy duplicates.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

// флаги, общие для scan и watch
var (
	flagColumn    string
	flagThreshold int
	flagLimit     int
	flagHeaderRow int
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
}

func addDedupFlags(c *cobra.Command) {
	c.Flags().StringVar(&flagColumn, "column", "", "column to deduplicate (default: auto-select)")
	c.Flags().IntVar(&flagThreshold, "threshold", model.DefaultThreshold, "similarity threshold 0..100")
	c.Flags().IntVar(&flagLimit, "limit", 0, "max candidates per seed row, 0 = no limit")
	c.Flags().IntVar(&flagHeaderRow, "header-row", 1, "1-based row holding the column names")
}

// options: флаг, заданный явно, сильнее конфига.
func options(c *cobra.Command, cfg config.Config) model.Options {
	opt := model.Options{
		Column:    flagColumn,
		Threshold: cfg.Threshold,
		Limit:     cfg.Limit,
		Keywords:  cfg.Keywords,
	}
	if c.Flags().Changed("threshold") {
		opt.Threshold = flagThreshold
	}
	if c.Flags().Changed("limit") {
		opt.Limit = flagLimit
	}
	return opt
}

// setup грузит конфиг и логгер; логи CLI идут в stderr.
func setup(stderr io.Writer) (config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, zerolog.Nop(), err
	}
	return cfg, config.NewLogger(cfg, stderr), nil
}

// openStore: nil без ошибки, если архив не настроен.
func openStore(cfg config.Config) (*store.Store, error) {
	if cfg.ReportDB == "" {
		return nil, nil
	}
	return store.Open(cfg.ReportDB)
}
