package fileio

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

const peekSize = 2048

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// readCSV reads all CSV records, auto-detecting encoding and converting to UTF-8.
// Delimiter is sniffed from the first line: comma, semicolon or tab.
func readCSV(r io.Reader) ([][]string, error) {
	br := bufio.NewReader(r)

	// Peek a bit to detect encoding
	peek, _ := br.Peek(peekSize)
	truncated := len(peek) == peekSize
	if bytes.HasPrefix(peek, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
		peek = peek[len(utf8BOM):]
	}
	cs := detectCharset(peek, truncated)

	dec := decoderFor(cs, br)
	dr := bufio.NewReader(dec)
	first, _ := dr.Peek(4096)

	cr := csv.NewReader(dr)
	cr.Comma = sniffDelimiter(first)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "csv: read")
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

// detectCharset: валидный UTF-8 не отдаём детектору: на коротких файлах он путает его с latin-1.
func detectCharset(peek []byte, truncated bool) string {
	if len(peek) == 0 || validUTF8Prefix(peek, truncated) {
		return "utf-8"
	}
	det, err := chardet.NewTextDetector().DetectBest(peek)
	if err != nil || det == nil {
		return "utf-8"
	}
	return strings.ToLower(det.Charset)
}

// validUTF8Prefix допускает обрезанную на границе Peek последнюю руну.
func validUTF8Prefix(b []byte, truncated bool) bool {
	if !truncated {
		return utf8.Valid(b)
	}
	for cut := 0; cut < utf8.UTFMax && cut < len(b); cut++ {
		if utf8.Valid(b[:len(b)-cut]) {
			return true
		}
	}
	return false
}

func decoderFor(cs string, r io.Reader) io.Reader {
	switch cs {
	case "windows-1251", "cp1251":
		return transform.NewReader(r, charmap.Windows1251.NewDecoder())
	case "koi8-r":
		return transform.NewReader(r, charmap.KOI8R.NewDecoder())
	case "iso-8859-5":
		return transform.NewReader(r, charmap.ISO8859_5.NewDecoder())
	case "windows-1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder())
	case "iso-8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	default:
		// assume UTF-8
		return r
	}
}

func sniffDelimiter(b []byte) rune {
	line := string(b)
	if i := strings.IndexAny(line, "\r\n"); i >= 0 {
		line = line[:i]
	}
	best, bestN := ',', strings.Count(line, ",")
	for _, d := range []rune{';', '\t'} {
		if n := strings.Count(line, string(d)); n > bestN {
			best, bestN = d, n
		}
	}
	return best
}
