// Package watch следит за каталогом и отдаёт пути новых/изменённых таблиц.
// Событие срабатывает после паузы Debounce: Excel и редакторы пишут файл
// несколькими Write подряд, а разбирать нужно уже дописанный.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"dedup-service/internal/fileio"
)

const DefaultDebounce = 500 * time.Millisecond

type Watcher struct {
	Dir      string
	Debounce time.Duration
	Logger   zerolog.Logger
}

// Run блокируется до отмены ctx. onFile вызывается из той же горутины,
// по одному разу на серию событий для файла.
func (w Watcher) Run(ctx context.Context, onFile func(path string)) error {
	dir, err := filepath.Abs(w.Dir)
	if err != nil {
		return err
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()
	if err := fw.Add(dir); err != nil {
		return err
	}
	w.Logger.Info().Str("dir", dir).Dur("debounce", debounce).Msg("watching")

	pending := make(map[string]time.Time)
	tick := time.NewTicker(debounce / 2)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			if !Wanted(ev.Name) {
				continue
			}
			pending[ev.Name] = time.Now()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.Logger.Warn().Err(err).Msg("watch error")

		case now := <-tick.C:
			for path, last := range pending {
				if now.Sub(last) < debounce {
					continue
				}
				delete(pending, path)
				if info, err := os.Stat(path); err != nil || info.IsDir() {
					continue
				}
				onFile(path)
			}
		}
	}
}

// Wanted: поддерживаемое расширение, не скрытый файл и не lock-файл Office (~$book.xlsx).
func Wanted(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || strings.HasPrefix(base, "~$") {
		return false
	}
	return fileio.Supported(base)
}
