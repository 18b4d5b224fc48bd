package fileio

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"dedup-service/internal/dedup/model"
)

// readSQLite берёт первую (по имени) пользовательскую таблицу базы целиком.
// Драйверу нужен путь, поэтому поток без имени файла сначала сбрасывается во временный файл.
func readSQLite(r io.Reader) (*model.Table, error) {
	path := ""
	if f, ok := r.(*os.File); ok {
		path = f.Name()
	} else {
		tmp, err := os.CreateTemp("", "dedup-*.sqlite")
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: temp file")
		}
		defer os.Remove(tmp.Name())
		_, err = io.Copy(tmp, r)
		if cerr := tmp.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: spool")
		}
		path = tmp.Name()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	defer db.Close()

	table, err := firstUserTable(db)
	if err != nil {
		return nil, err
	}
	return loadSQLiteTable(db, table)
}

func firstUserTable(db *sql.DB) (string, error) {
	const q = `SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name LIMIT 1`
	var name string
	if err := db.QueryRow(q).Scan(&name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", eris.New("sqlite: no user tables found")
		}
		return "", eris.Wrap(err, "sqlite: list tables")
	}
	return name, nil
}

func loadSQLiteTable(db *sql.DB, table string) (*model.Table, error) {
	rows, err := db.Query(fmt.Sprintf("SELECT * FROM %s", quoteIdent(table)))
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: select %q", table)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: columns")
	}
	t := &model.Table{Columns: make([]model.Column, len(cols))}
	for i, c := range cols {
		t.Columns[i] = model.Column{Name: c}
	}

	vals := make([]sql.NullString, len(cols))
	dest := make([]any, len(cols))
	for i := range vals {
		dest[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan")
		}
		for i, v := range vals {
			cell := model.Missing
			if v.Valid {
				cell = model.Text(v.String)
			}
			t.Columns[i].Cells = append(t.Columns[i].Cells, cell)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: rows")
	}
	return t, nil
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
