package export

import (
	"encoding/csv"
	"io"
)

// BOM is the UTF-8 byte order mark, written first so spreadsheet tools detect the encoding.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter wraps csv.Writer for exporting analysis records.
type CSVWriter struct {
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter that writes to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *CSVWriter) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteRecords converts records to rows and writes them.
func (w *CSVWriter) WriteRecords(records []Record) error {
	for i := range records {
		if err := w.csv.Write(recordToRow(&records[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *CSVWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *CSVWriter) Error() error {
	return w.csv.Error()
}

// WriteCSV writes BOM, header and records to w.
func WriteCSV(w io.Writer, records []Record) error {
	if _, err := w.Write(BOM); err != nil {
		return err
	}
	cw := NewCSVWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return err
	}
	if err := cw.WriteRecords(records); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
