package output

import (
	"encoding/csv"
	"io"
)

// CSVFormatter writes the table rendering of data as CSV, header first.
type CSVFormatter struct {
	Wide bool
}

// Format formats data as CSV.
func (f *CSVFormatter) Format(w io.Writer, data any) error {
	if data == nil {
		return nil
	}
	t, err := tableOf(data, f.Wide)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if len(t.Headers) > 0 {
		if err := cw.Write(t.Headers); err != nil {
			return err
		}
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	return cw.Error()
}
