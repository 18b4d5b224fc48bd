package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"dedup-service/internal/watch"
)

var flagDebounce int

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Scan every table dropped into a directory",
	Long:  "Watches <dir> and runs a scan on each created or rewritten table file. Results are logged and, when REPORT_DB is set, archived.",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	addDedupFlags(watchCmd)
	watchCmd.Flags().IntVar(&flagDebounce, "debounce-ms", int(watch.DefaultDebounce.Milliseconds()), "quiet period before a file is scanned")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
	}
	opt := options(cmd, cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := watch.Watcher{Dir: args[0], Debounce: msec(flagDebounce), Logger: logger}
	return w.Run(ctx, func(path string) {
		res, err := scanFile(path, flagHeaderRow, opt, logger)
		if err != nil {
			logger.Warn().Err(err).Str("file", path).Msg("scan failed")
			return
		}
		if st != nil {
			id := uuid.NewString()
			if err := st.Save(id, res); err != nil {
				logger.Error().Err(err).Msg("save report")
				return
			}
			logger.Info().Str("id", id).Str("file", path).Msg("report saved")
		}
	})
}

func msec(n int) time.Duration { return time.Duration(n) * time.Millisecond }
