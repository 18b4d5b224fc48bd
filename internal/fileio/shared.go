package fileio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"dedup-service/internal/dedup/model"
)

// Extensions: поддерживаемые форматы, по расширению файла.
var Extensions = []string{".csv", ".txt", ".xlsx", ".xls", ".db", ".sqlite", ".sqlite3"}

func Supported(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// ReadTable выберет парсер по расширению и вернёт таблицу с колонками в исходном порядке.
// headerRow: номер строки заголовков (1-based). Любая ошибка разбора: *model.MalformedTableError.
func ReadTable(r io.Reader, filename string, headerRow int) (*model.Table, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	var (
		rows [][]string
		err  error
	)
	switch ext {
	case ".xlsx":
		rows, err = readXLSX(r)
	case ".xls":
		rows, err = readXLS(r, headerRow)
	case ".csv", ".txt":
		rows, err = readCSV(r)
	case ".db", ".sqlite", ".sqlite3":
		t, err := readSQLite(r)
		if err != nil {
			return nil, malformed(filename, err)
		}
		return t, nil
	default:
		return nil, malformed(filename, eris.Errorf("unsupported file type %q", ext))
	}
	if err != nil {
		return nil, malformed(filename, err)
	}
	if len(rows) == 0 {
		return nil, malformed(filename, eris.New("no rows found"))
	}
	h := pickHeader(rows, headerRow)
	return model.NewTable(h, dataRows(rows, len(h), headerRow)), nil
}

// ReadFile opens path and parses it with ReadTable.
func ReadFile(path string, headerRow int) (*model.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "open %s", path)
	}
	defer f.Close()
	return ReadTable(f, filepath.Base(path), headerRow)
}

func malformed(file string, err error) error {
	return &model.MalformedTableError{File: file, Err: err}
}

// pickHeader: берёт строку заголовков и подставляет Column N для пустых,
// повторяющимся именам добавляет суффикс " (2)", " (3)"...
func pickHeader(rows [][]string, headerRow int) []string {
	idx := headerRow - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(rows) {
		idx = 0
	}
	h := rows[idx]
	out := make([]string, len(h))
	seen := make(map[string]int, len(h))
	for i, v := range h {
		v = strings.TrimSpace(v)
		if v == "" {
			v = fmt.Sprintf("Column %d", i+1)
		}
		if n := seen[v]; n > 0 {
			seen[v] = n + 1
			v = fmt.Sprintf("%s (%d)", v, n+1)
		} else {
			seen[v] = 1
		}
		out[i] = v
	}
	return out
}

// dataRows: строки после заголовка, выровненные по ширине шапки; полностью пустые пропускаем.
func dataRows(rows [][]string, width, headerRow int) [][]string {
	start := headerRow // первая строка после заголовков
	if start < 1 || start > len(rows) {
		start = 1
	}
	var out [][]string
	for r := start; r < len(rows); r++ {
		rec := make([]string, width)
		copy(rec, rows[r])
		empty := true
		for _, v := range rec {
			if strings.TrimSpace(v) != "" {
				empty = false
				break
			}
		}
		if !empty {
			out = append(out, rec)
		}
	}
	return out
}
