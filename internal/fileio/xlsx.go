package fileio

import (
	"bytes"
	"io"

	"github.com/rotisserie/eris"
	excelize "github.com/xuri/excelize/v2"
)

// readXLSX читает первый лист книги целиком.
func readXLSX(r io.Reader) ([][]string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: read")
	}
	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: open")
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, eris.Wrapf(err, "xlsx: rows of %q", sheet)
	}
	return rows, nil
}
