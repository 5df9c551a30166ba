package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// utf8BOM lets spreadsheet applications detect UTF-8 and render Vietnamese
// text correctly.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes t as UTF-8 CSV with a BOM prefix and CRLF line endings.
// Fields containing commas, quotes or newlines are quoted and inner quotes
// are doubled. Line breaks inside fields are written as "\n", so "\r\n"
// and a lone "\r" both read back as "\n".
func WriteCSV(w io.Writer, t Table) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.Write(normalizeNewlines(t.Header)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range t.Rows {
		if err := cw.Write(normalizeNewlines(row)); err != nil {
			return fmt.Errorf("write rows: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	return nil
}

// encoding/csv drops a lone "\r" when writing with UseCRLF and folds a quoted
// "\r\n" to "\n" when reading.
var newlineReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

func normalizeNewlines(fields []string) []string {
	var out []string
	for i, f := range fields {
		if !strings.ContainsRune(f, '\r') {
			continue
		}
		if out == nil {
			out = append([]string(nil), fields...)
		}
		out[i] = newlineReplacer.Replace(f)
	}
	if out == nil {
		return fields
	}
	return out
}

// CSV renders t into memory.
func CSV(t Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadCSV parses CSV produced by WriteCSV, dropping the BOM. The first
// record is the header.
func ReadCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return records, nil
}
